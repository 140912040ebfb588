package console

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"hbnb/internal/models"
	"hbnb/internal/store"
	"hbnb/internal/tokenizer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type harness struct {
	t       *testing.T
	engine  *store.Engine
	out     *bytes.Buffer
	console *Console
}

func newHarness(t *testing.T, backend store.Backend) *harness {
	t.Helper()
	if backend == nil {
		backend = store.NewMemoryBackend()
	}
	engine := store.New(backend)
	require.NoError(t, engine.Reload())
	out := &bytes.Buffer{}
	return &harness{
		t:       t,
		engine:  engine,
		out:     out,
		console: New(engine, strings.NewReader(""), out),
	}
}

// exec runs one line and returns what it printed.
func (h *harness) exec(line string) string {
	h.t.Helper()
	h.out.Reset()
	stop, err := h.console.Execute(line)
	require.NoError(h.t, err, "line %q", line)
	require.False(h.t, stop, "line %q", line)
	return h.out.String()
}

func (h *harness) create(kind string) string {
	h.t.Helper()
	id := strings.TrimSpace(h.exec("create " + kind))
	require.NotEmpty(h.t, id)
	return id
}

func TestEndToEnd(t *testing.T) {
	h := newHarness(t, nil)

	id := h.create("User")
	assert.True(t, h.engine.All().Has("User."+id))

	assert.Contains(t, h.exec("show User "+id), "[User] ("+id+")")

	assert.Empty(t, h.exec(`update User `+id+` name "Bob"`))
	assert.Contains(t, h.exec("show User "+id), "'name': 'Bob'")

	assert.Empty(t, h.exec("destroy User "+id))
	assert.Equal(t, "** no instance found **\n", h.exec("show User "+id))
	assert.Equal(t, "[]\n", h.exec("all User"))
}

func TestValidationMessages(t *testing.T) {
	h := newHarness(t, nil)
	id := h.create("Place")

	cases := []struct {
		line string
		want string
	}{
		{"create", "** class name missing **"},
		{"create Nope", "** class doesn't exist **"},
		{"create User extra", "** class doesn't exist **"},
		{"show", "** class name missing **"},
		{"show Nope", "** class doesn't exist **"},
		{"show Place", "** instance id missing **"},
		{"show Place 1234", "** no instance found **"},
		{"show User " + id, "** no instance found **"},
		{"destroy", "** class name missing **"},
		{"destroy Nope 1", "** class doesn't exist **"},
		{"destroy Place", "** instance id missing **"},
		{"destroy Place 1234", "** no instance found **"},
		{"all Nope", "** class doesn't exist **"},
		{"count", "** class name missing **"},
		{"count Nope", "** class doesn't exist **"},
		{"update", "** class name missing **"},
		{"update Nope", "** class doesn't exist **"},
		{"update Place", "** instance id missing **"},
		{"update Place 1234", "** no instance found **"},
		{"update Place " + id, "** attribute name missing **"},
		{"update Place " + id + " name", "** value missing **"},
		{"update Place " + id + " {not json}", "** value missing **"},
		{"frobnicate", "*** Unknown syntax: frobnicate"},
		{"Place.frobnicate()", "*** Unknown syntax: Place.frobnicate()"},
		{"Place.all", "*** Unknown syntax: Place.all"},
		{"help nope", "*** No help on nope"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want+"\n", h.exec(c.line), "line %q", c.line)
	}

	assert.Equal(t, 1, h.engine.All().Len())
}

func TestEmptyLineIsNoop(t *testing.T) {
	h := newHarness(t, nil)
	assert.Empty(t, h.exec(""))
	assert.Empty(t, h.exec("   \t"))
}

func TestUpdateStoresStrings(t *testing.T) {
	h := newHarness(t, nil)
	id := h.create("Place")

	h.exec("update Place " + id + " number_rooms 4")
	attrs, ok := h.engine.Get("Place." + id)
	require.True(t, ok)
	v, _ := attrs.Get("number_rooms")
	assert.Equal(t, "4", v)
	assert.Contains(t, h.exec("show Place "+id), "'number_rooms': '4'")
}

func TestUpdateWithObjectLiteral(t *testing.T) {
	h := newHarness(t, nil)
	id := h.create("User")

	assert.Empty(t, h.exec(`update User `+id+` {"first_name": "John", "age": 89, "admin": true}`))

	attrs, _ := h.engine.Get("User." + id)
	keys := attrs.Keys()
	assert.Equal(t, []string{"first_name", "age", "admin"}, keys[len(keys)-3:])
	for name, want := range map[string]string{"first_name": "John", "age": "89", "admin": "true"} {
		v, _ := attrs.Get(name)
		assert.Equal(t, want, v, name)
	}
}

func TestAll(t *testing.T) {
	h := newHarness(t, nil)
	u := h.create("User")
	c := h.create("City")

	out := h.exec("all")
	assert.True(t, strings.HasPrefix(out, "[\"[User] ("+u+") {'id': '"+u+"', "), out)
	assert.Contains(t, out, "\"[City] ("+c+") {'id': '"+c+"', ")
	assert.Less(t, strings.Index(out, u), strings.Index(out, c))

	only := h.exec("all City")
	assert.NotContains(t, only, u)
	assert.Contains(t, only, c)
}

func TestDotCalls(t *testing.T) {
	h := newHarness(t, nil)
	id := h.create("User")
	h.create("User")
	h.create("State")

	assert.Equal(t, "2\n", h.exec("User.count()"))
	assert.Equal(t, "1\n", h.exec("State.count()"))
	assert.Contains(t, h.exec(`User.show("`+id+`")`), "[User] ("+id+")")
	assert.Equal(t, h.exec("all User"), h.exec("User.all()"))

	h.exec(`User.update("` + id + `", "first_name", "John")`)
	h.exec(`User.update("` + id + `", {"last_name": "Doe", "age": 3})`)
	show := h.exec("show User " + id)
	assert.Contains(t, show, "'first_name': 'John'")
	assert.Contains(t, show, "'last_name': 'Doe'")
	assert.Contains(t, show, "'age': '3'")

	h.exec(`User.destroy("` + id + `")`)
	assert.Equal(t, "1\n", h.exec("User.count()"))
}

func TestDotCallParenthesesInValues(t *testing.T) {
	h := newHarness(t, nil)
	id := h.create("User")

	assert.Empty(t, h.exec(`User.update("`+id+`", "bio", "hi :)")`))
	assert.Empty(t, h.exec(`User.update("`+id+`", {"mood": "(ok)", "note": "a)b"})`))

	show := h.exec(`User.show("` + id + `")`)
	assert.Contains(t, show, "'bio': 'hi :)'")
	assert.Contains(t, show, "'mood': '(ok)'")
	assert.Contains(t, show, "'note': 'a)b'")

	assert.Equal(t, "*** Unknown syntax: User.show(\"x\") extra\n", h.exec(`User.show("x") extra`))
}

func TestHelp(t *testing.T) {
	h := newHarness(t, nil)

	header := "Documented commands (type help <topic>):"
	want := "\n" + header + "\n" + strings.Repeat("=", len(header)) + "\n" +
		"EOF  all  count  create  destroy  help  quit  show  update\n\n"
	assert.Equal(t, want, h.exec("help"))
	assert.Equal(t, want, h.exec("?"))
	assert.Equal(t, "Quit command to exit the program.\n", h.exec("help quit"))
	assert.Contains(t, h.exec("help create"), "Classes: Amenity, BaseModel, City, Place, Review, State, User\n")
	assert.Equal(t, h.exec("help show"), h.exec("? show"))
}

func TestColumnizeWraps(t *testing.T) {
	rows := columnize([]string{"aaaa", "bb", "cccc", "d"}, 10)
	assert.Equal(t, []string{"aaaa  cccc", "bb    d"}, rows)
}

func TestQuitAndEOF(t *testing.T) {
	h := newHarness(t, nil)

	stop, err := h.console.Execute("quit")
	require.NoError(t, err)
	assert.True(t, stop)
	assert.Empty(t, h.out.String())

	stop, err = h.console.Execute("EOF")
	require.NoError(t, err)
	assert.True(t, stop)
	assert.Equal(t, "\n", h.out.String())
}

func TestRunEndOfInputActsAsEOF(t *testing.T) {
	engine := store.New(store.NewMemoryBackend())
	out := &bytes.Buffer{}
	c := New(engine, strings.NewReader("create Amenity\ncount Amenity"), out)

	require.NoError(t, c.Run())
	lines := strings.Split(out.String(), "\n")
	require.Len(t, lines, 4)
	assert.Len(t, lines[0], 36)
	assert.Equal(t, "1", lines[1])
	assert.Equal(t, "", lines[2])
}

func TestRunStopsAtQuit(t *testing.T) {
	engine := store.New(store.NewMemoryBackend())
	out := &bytes.Buffer{}
	c := New(engine, strings.NewReader("quit\ncreate User\n"), out,
		Interactive(true), WithPrompt("> "))

	require.NoError(t, c.Run())
	assert.Equal(t, "> ", out.String())
	assert.Equal(t, 0, engine.All().Len())
}

func TestRunPromptsOnlyWhenInteractive(t *testing.T) {
	engine := store.New(store.NewMemoryBackend())

	quiet := &bytes.Buffer{}
	require.NoError(t, New(engine, strings.NewReader("\n"), quiet).Run())
	assert.Equal(t, "\n", quiet.String())

	loud := &bytes.Buffer{}
	require.NoError(t, New(engine, strings.NewReader("\n"), loud, Interactive(true)).Run())
	assert.Equal(t, DefaultPrompt+DefaultPrompt+"\n", loud.String())
}

func TestParseErrorEndsRun(t *testing.T) {
	engine := store.New(store.NewMemoryBackend())
	out := &bytes.Buffer{}
	c := New(engine, strings.NewReader("show \"User\nquit\n"), out)

	err := c.Run()
	assert.ErrorIs(t, err, tokenizer.ErrParse)
}

func TestStorageErrorEndsRun(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	engine := store.New(store.NewFileBackend(filepath.Join(blocker, "file.json")))
	c := New(engine, strings.NewReader("create User\n"), &bytes.Buffer{})
	assert.Error(t, c.Run())
}

func TestMutationsPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.json")
	h := newHarness(t, store.NewFileBackend(path))

	keep := h.create("Review")
	gone := h.create("Review")
	h.exec("update Review " + keep + " text \"great stay\"")
	h.exec("destroy Review " + gone)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Review."+keep)
	assert.Contains(t, string(data), `"text": "great stay"`)
	assert.NotContains(t, string(data), gone)

	fresh := store.New(store.NewFileBackend(path))
	require.NoError(t, fresh.Reload())
	assert.Equal(t, []string{"Review." + keep}, fresh.All().Keys())

	// The reloaded entry round-trips to the same record.
	r, err := fresh.Record("Review." + keep)
	require.NoError(t, err)
	assert.Equal(t, models.KindReview, r.Kind)
}
