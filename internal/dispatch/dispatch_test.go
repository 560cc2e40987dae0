package dispatch

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/codex-k8s/devterm-mcp-server/internal/tools"
)

func newDispatcher(t *testing.T) *Dispatcher {
	t.Helper()
	return New(tools.NewRegistry(tools.Options{QR: tools.QRWriter{Dir: t.TempDir()}}))
}

func TestExecuteScenarios(t *testing.T) {
	t.Parallel()

	d := newDispatcher(t)
	cases := []struct {
		tool  tools.ID
		input string
		want  string
	}{
		{tool: tools.JSON, input: `{"key": "value"}`, want: "{\n  \"key\": \"value\"\n}"},
		{tool: tools.JSON, input: "\n  [1]  \n", want: "[\n  1\n]"},
		{tool: tools.Base64, input: "hello", want: "aGVsbG8="},
		{tool: tools.Base64, input: "  hello\n", want: "aGVsbG8="},
		{tool: tools.URL, input: " a/b ", want: "a%2Fb"},
		{tool: tools.Case, input: "ABC def", want: "abc def"},
		{tool: tools.Hash, input: "   ", want: ""},
		{tool: tools.Base64, input: "", want: ""},
		{tool: tools.URL, input: "\t", want: ""},
		{tool: tools.Case, input: "\n", want: ""},
		{tool: tools.QR, input: "  ", want: ""},
	}
	for _, tc := range cases {
		res := d.Execute(context.Background(), tc.tool, tc.input)
		if !res.Success || res.Err != nil {
			t.Fatalf("%s(%q) failed: %+v", tc.tool, tc.input, res)
		}
		if res.Output != tc.want {
			t.Fatalf("%s(%q)=%q want=%q", tc.tool, tc.input, res.Output, tc.want)
		}
		if res.Tool != tc.tool {
			t.Fatalf("result tool=%s want=%s", res.Tool, tc.tool)
		}
	}
}

func TestExecuteJSONFailures(t *testing.T) {
	t.Parallel()

	d := newDispatcher(t)
	for _, input := range []string{"not json", "", "   \n\t"} {
		res := d.Execute(context.Background(), tools.JSON, input)
		if res.Success {
			t.Fatalf("json(%q) succeeded: %q", input, res.Output)
		}
		if !strings.HasPrefix(res.Output, ErrorPrefix) {
			t.Fatalf("output %q lacks %q", res.Output, ErrorPrefix)
		}
		var parseErr *tools.ParseError
		if !errors.As(res.Err, &parseErr) {
			t.Fatalf("err=%T want *tools.ParseError", res.Err)
		}
		if res.Output != ErrorPrefix+parseErr.Err.Error() {
			t.Fatalf("output %q does not carry the parser message %q", res.Output, parseErr.Err.Error())
		}
	}
}

func TestExecuteGeneratorsIgnoreInput(t *testing.T) {
	t.Parallel()

	d := newDispatcher(t)
	for _, id := range []tools.ID{tools.UUID, tools.Password} {
		first := d.Execute(context.Background(), id, "whatever is typed")
		second := d.Execute(context.Background(), id, "")
		if !first.Success || !second.Success {
			t.Fatalf("%s failed: %+v %+v", id, first, second)
		}
		if first.Output == "" || first.Output == second.Output {
			t.Fatalf("%s outputs %q and %q", id, first.Output, second.Output)
		}
	}
}

func TestExecuteQRWritesFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	d := New(tools.NewRegistry(tools.Options{QR: tools.QRWriter{Dir: dir}}))
	res := d.Execute(context.Background(), tools.QR, " hello ")
	if !res.Success {
		t.Fatalf("qr failed: %s", res.Output)
	}
	if !strings.HasPrefix(res.Output, "QR code saved to "+dir) {
		t.Fatalf("output=%q", res.Output)
	}
}

func TestExecuteUnknownTool(t *testing.T) {
	t.Parallel()

	res := newDispatcher(t).Execute(context.Background(), "rot13", "abc")
	if res.Success {
		t.Fatal("unknown tool succeeded")
	}
	if !errors.Is(res.Err, tools.ErrUnknownTool) {
		t.Fatalf("err=%v want ErrUnknownTool", res.Err)
	}
	if res.Output != "Error: unknown tool: rot13" {
		t.Fatalf("output=%q", res.Output)
	}
}

type panicLookup struct{}

func (panicLookup) Get(id tools.ID) (tools.Descriptor, error) {
	return tools.Descriptor{ID: id, Transform: func(string) (string, error) {
		panic("boom")
	}}, nil
}

func TestExecuteRecoversPanics(t *testing.T) {
	t.Parallel()

	res := New(panicLookup{}).Execute(context.Background(), "x", "in")
	if res.Success || res.Output != "Error: boom" {
		t.Fatalf("result=%+v", res)
	}
}

func TestExecuteCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := newDispatcher(t).Execute(ctx, tools.Base64, "hello")
	if res.Success || !errors.Is(res.Err, context.Canceled) {
		t.Fatalf("result=%+v", res)
	}
}
