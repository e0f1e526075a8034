package ssdb

import "strings"

// Category selects how a command's response blocks are turned into Data.
type Category int

const (
	// CategoryDefault keeps the payload blocks as a list. Unknown commands
	// fall in this category.
	CategoryDefault Category = iota

	// CategoryInt parses block 1 as an integer (0 when absent).
	CategoryInt

	// CategoryFloat parses block 1 as a float (0 when absent).
	CategoryFloat

	// CategoryString expects exactly one payload block.
	CategoryString

	// CategoryPop behaves like CategoryString when at most one item was
	// requested, like CategoryList otherwise.
	CategoryPop

	// CategoryList keeps every payload block, in order.
	CategoryList

	// CategoryBool expects exactly one payload block and tests its truthiness.
	CategoryBool

	// CategoryBoolMap pairs payload blocks into key -> bool.
	CategoryBoolMap

	// CategoryMap pairs payload blocks into key -> value. Values of
	// sorted-set commands (z prefix) are integers.
	CategoryMap
)

var categoryNames = [...]string{
	CategoryDefault: "default",
	CategoryInt:     "int",
	CategoryFloat:   "float",
	CategoryString:  "string",
	CategoryPop:     "pop",
	CategoryList:    "list",
	CategoryBool:    "bool",
	CategoryBoolMap: "bool-map",
	CategoryMap:     "map",
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "unknown"
	}
	return categoryNames[c]
}

// sortedSetPrefix marks commands whose map values are scores.
const sortedSetPrefix = 'z'

var commandCategories = map[string]Category{}

func register(category Category, commands ...string) {
	for _, cmd := range commands {
		if _, dup := commandCategories[cmd]; dup {
			panic("ssdb: command registered twice: " + cmd)
		}
		commandCategories[cmd] = category
	}
}

func init() {
	register(CategoryInt,
		"dbsize", "ping", "qset", "getbit", "setbit", "countbit", "strlen",
		"set", "setx", "setnx", "zset", "hset",
		"qpush", "qpush_front", "qpush_back", "qtrim_front", "qtrim_back",
		"del", "zdel", "hdel", "hsize", "zsize", "qsize",
		"hclear", "zclear", "qclear",
		"multi_set", "multi_del", "multi_hset", "multi_hdel", "multi_zset", "multi_zdel",
		"incr", "decr", "zincr", "zdecr", "hincr", "hdecr",
		"zget", "zrank", "zrrank", "zcount", "zsum",
		"zremrangebyrank", "zremrangebyscore",
		"ttl", "expire",
	)
	register(CategoryFloat, "zavg")
	register(CategoryString, "get", "substr", "getset", "hget", "qget", "qfront", "qback")
	register(CategoryPop, "qpop", "qpop_front", "qpop_back")
	register(CategoryList,
		"keys", "rkeys", "zkeys", "hkeys", "hlist", "hrlist", "zlist", "zrlist",
		"qlist", "qrlist", "qslice", "qrange",
	)
	register(CategoryBool, "auth", "exists", "hexists", "zexists")
	register(CategoryBoolMap, "multi_exists", "multi_hexists", "multi_zexists")
	register(CategoryMap,
		"scan", "rscan", "zscan", "zrscan", "zrange", "zrrange",
		"hscan", "hrscan", "hgetall",
		"multi_hsize", "multi_zsize", "multi_get", "multi_hget", "multi_zget",
		"zpop_front", "zpop_back",
	)
}

// CategoryOf returns the category of a command. Names are case-insensitive.
func CategoryOf(cmd string) Category {
	return commandCategories[strings.ToLower(cmd)]
}
