package console

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"hbnb/internal/models"
	"hbnb/internal/tokenizer"
)

// User-facing error messages.
const (
	msgClassMissing = "** class name missing **"
	msgClassUnknown = "** class doesn't exist **"
	msgIDMissing    = "** instance id missing **"
	msgNoInstance   = "** no instance found **"
	msgAttrMissing  = "** attribute name missing **"
	msgValueMissing = "** value missing **"
)

func (c *Console) commandTable() map[string]command {
	return map[string]command{
		"quit": {c.doQuit, "Quit command to exit the program."},
		"EOF":  {c.doEOF, "Exit the program at end of input."},
		"create": {c.doCreate,
			"Usage: create <class>\nCreate a new instance, save it and print its id.\nClasses: " + kindList()},
		"show": {c.doShow,
			"Usage: show <class> <id> or <class>.show(<id>)\nPrint the string representation of an instance."},
		"destroy": {c.doDestroy,
			"Usage: destroy <class> <id> or <class>.destroy(<id>)\nDelete an instance and save the change."},
		"all": {c.doAll,
			"Usage: all or all <class> or <class>.all()\nPrint the string representation of every instance, or of every instance of a class."},
		"count": {c.doCount,
			"Usage: count <class> or <class>.count()\nPrint the number of instances of a class."},
		"update": {c.doUpdate,
			"Usage: update <class> <id> <attribute> <value> or\n" +
				"       <class>.update(<id>, <attribute>, <value>) or\n" +
				"       <class>.update(<id>, <dictionary>)\n" +
				"Set attributes on an instance and save the change."},
		"help": {c.doHelp, `List available commands with "help" or detailed help with "help cmd".`},
	}
}

// kindList joins the known class names for help text.
func kindList() string {
	kinds := models.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

func (c *Console) doQuit(string) (bool, error) {
	return true, nil
}

func (c *Console) doEOF(string) (bool, error) {
	c.println("")
	return true, nil
}

// doCreate takes the whole remainder as the class name, so "create User x"
// names the unknown class "User x".
func (c *Console) doCreate(arg string) (bool, error) {
	if arg == "" {
		c.println(msgClassMissing)
		return false, nil
	}
	factory, ok := models.Lookup(arg)
	if !ok {
		c.println(msgClassUnknown)
		return false, nil
	}

	rec := factory(c.engine)
	c.println(rec.ID)
	return false, c.engine.Save()
}

func (c *Console) doShow(arg string) (bool, error) {
	args, err := tokenizer.Tokenize(arg)
	if err != nil {
		return false, err
	}
	key, ok := c.lookup(args)
	if !ok {
		return false, nil
	}
	attrs, _ := c.engine.Get(key)
	c.println(models.Describe(models.Kind(args[0]), args[1], attrs))
	return false, nil
}

func (c *Console) doDestroy(arg string) (bool, error) {
	args, err := tokenizer.Tokenize(arg)
	if err != nil {
		return false, err
	}
	key, ok := c.lookup(args)
	if !ok {
		return false, nil
	}
	c.engine.Delete(key)
	return false, c.engine.Save()
}

func (c *Console) doAll(arg string) (bool, error) {
	args, err := tokenizer.Tokenize(arg)
	if err != nil {
		return false, err
	}

	prefix := ""
	if len(args) > 0 {
		if !models.IsKnown(args[0]) {
			c.println(msgClassUnknown)
			return false, nil
		}
		prefix = args[0] + "."
	}

	out := []string{}
	c.engine.All().Each(func(key string, attrs *models.Attributes) bool {
		if !strings.HasPrefix(key, prefix) {
			return true
		}
		kind, id, _ := strings.Cut(key, ".")
		out = append(out, models.Describe(models.Kind(kind), id, attrs))
		return true
	})
	c.println(models.ReprList(out))
	return false, nil
}

func (c *Console) doCount(arg string) (bool, error) {
	args, err := tokenizer.Tokenize(arg)
	if err != nil {
		return false, err
	}
	if len(args) == 0 {
		c.println(msgClassMissing)
		return false, nil
	}
	if !models.IsKnown(args[0]) {
		c.println(msgClassUnknown)
		return false, nil
	}
	c.println(strconv.Itoa(c.engine.Count(models.Kind(args[0]))))
	return false, nil
}

// doUpdate stores values as the literal strings typed. A trailing {...}
// object literal sets each of its members in literal order.
func (c *Console) doUpdate(arg string) (bool, error) {
	args, err := tokenizer.Tokenize(arg)
	if err != nil {
		return false, err
	}
	key, ok := c.lookup(args)
	if !ok {
		return false, nil
	}
	if len(args) < 3 {
		c.println(msgAttrMissing)
		return false, nil
	}
	attrs, _ := c.engine.Get(key)

	if len(args) == 3 && strings.HasPrefix(args[2], "{") {
		if lit := gjson.Parse(args[2]); gjson.Valid(args[2]) && lit.IsObject() {
			lit.ForEach(func(name, value gjson.Result) bool {
				attrs.Set(name.String(), literalString(value))
				return true
			})
			return false, c.engine.Save()
		}
	}

	if len(args) < 4 {
		c.println(msgValueMissing)
		return false, nil
	}
	attrs.Set(args[2], args[3])
	return false, c.engine.Save()
}

// literalString renders a JSON member as the string update stores:
// strings lose their quotes, everything else keeps its JSON text.
func literalString(v gjson.Result) string {
	if v.Type == gjson.String {
		return v.String()
	}
	return v.Raw
}

// lookup runs the class, id and existence checks shared by show, destroy
// and update, printing the first failure.
func (c *Console) lookup(args []string) (string, bool) {
	switch {
	case len(args) == 0:
		c.println(msgClassMissing)
		return "", false
	case !models.IsKnown(args[0]):
		c.println(msgClassUnknown)
		return "", false
	case len(args) < 2:
		c.println(msgIDMissing)
		return "", false
	}

	key := models.Key(models.Kind(args[0]), args[1])
	if _, ok := c.engine.Get(key); !ok {
		c.println(msgNoInstance)
		return "", false
	}
	return key, true
}
