package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/solvewise/internal/store"
)

// runCLI executes the root command with args in an isolated environment
// and returns stdout. Flags are reset first since the commands are
// package-level.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_DATA_HOME", dir)
	for _, k := range []string{"SOLVEWISE_ENDPOINT", "SOLVEWISE_DB", "SOLVEWISE_STRICT", "SOLVEWISE_TOPIC", "SOLVEWISE_LOG_FILE"} {
		t.Setenv(k, "")
	}

	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func TestClassifyStdin(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"practice", `{"type":"practice","final_answer":"4","steps":["2+2=4"]}`, []string{"kind: practice", "4", "2+2=4"}},
		{"numbered list", "1. Add\n2. Subtract", []string{"kind: list", "Add", "Subtract"}},
		{"plain text", "Hello there", []string{"kind: text", "Hello there"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, tt.input, "classify")
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestClassifyJSONOutput(t *testing.T) {
	out, err := runCLI(t, `{"type":"error","explanation":"Division by zero is undefined."}`, "classify", "--json")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "error", got["kind"])
}

func TestAskPrintsReply(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"type":"practice","final_answer":"12","steps":["3 x 4 = 12"]}`))
	}))
	defer srv.Close()

	out, err := runCLI(t, "", "ask", "--endpoint", srv.URL, "--topic", "math", "what", "is", "3*4")
	require.NoError(t, err)
	assert.Contains(t, out, "12")
	assert.Contains(t, out, "3 x 4 = 12")
	assert.Equal(t, "what is 3*4", gotBody["message"])
	assert.Equal(t, "math", gotBody["topic"])
}

func TestAskErrorReplyExitsZero(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	out, err := runCLI(t, "", "ask", "--endpoint", srv.URL, "hi")
	require.NoError(t, err)
	assert.NotEmpty(t, strings.TrimSpace(out))
}

func TestInvalidEndpointRejected(t *testing.T) {
	_, err := runCLI(t, "", "ask", "--endpoint", "not a url", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestLLMListAndStats(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "events.db")
	s, err := store.Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, s.EventRepo().AppendLLMRequest(context.Background(), store.LLMRequestEventData{
		Provider: "openai", Model: "gpt-4o-mini", Purpose: "tutor-reply",
		InputTokens: 100, OutputTokens: 50, LatencyMs: 42, Success: true,
		RequestBody: "[user]\nwhat is 2+2", ResponseBody: `{"type":"practice"}`,
	}))
	require.NoError(t, s.Close())

	out, err := runCLI(t, "", "llm", "list", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "tutor-reply")
	assert.Contains(t, out, "gpt-4o-mini")

	out, err = runCLI(t, "", "llm", "view", "1", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "what is 2+2")

	out, err = runCLI(t, "", "llm", "stats", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "TOTAL")
	assert.Contains(t, out, "$")

	_, err = runCLI(t, "", "llm", "view", "99", "--db", dbPath)
	require.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := runCLI(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "solvewise "))
}
