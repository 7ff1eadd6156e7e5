package cli

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// catalogHandler is a minimal stand-in for the catalog service, answering
// the four endpoint shapes from in-memory maps.
type catalogHandler struct {
	instruments []string
	proposals   map[string]string   // "INST/RUN" -> proposal
	runRanges   map[string]string   // "INST/PROPOSAL" -> run range text
	locations   map[string][]string // filename -> candidate paths
}

func (h *catalogHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p := strings.TrimPrefix(r.URL.Path, "/")
	parts := strings.Split(p, "/")
	w.Header().Set("Content-Type", "text/xml")

	switch {
	case p == "experiment/SNS":
		fmt.Fprint(w, "<instruments>")
		for _, inst := range h.instruments {
			fmt.Fprintf(w, "<instrument>%s</instrument>", inst)
		}
		fmt.Fprint(w, "</instruments>")
	case parts[0] == "dataset" && len(parts) == 5:
		if prop, ok := h.proposals[parts[2]+"/"+parts[3]]; ok {
			fmt.Fprintf(w, "<metadata><proposal>%s</proposal></metadata>", prop)
			return
		}
		fmt.Fprint(w, "<metadata/>")
	case parts[0] == "experiment" && len(parts) == 4:
		if rr, ok := h.runRanges[parts[2]+"/"+parts[3]]; ok {
			fmt.Fprintf(w, "<proposal><runRange>%s</runRange></proposal>", rr)
			return
		}
		fmt.Fprint(w, "<proposal/>")
	case parts[0] == "datafile" && len(parts) == 3:
		fmt.Fprint(w, "<locations>")
		for _, loc := range h.locations[parts[2]] {
			fmt.Fprintf(w, "<location>%s</location>", loc)
		}
		fmt.Fprint(w, "</locations>")
	default:
		http.NotFound(w, r)
	}
}

// runCommand executes the root command against a catalog stub, routing it
// there through a throwaway config file.
func runCommand(t *testing.T, h http.Handler, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	cfg := "catalog:\n  base_url: " + srv.URL + "/\n"
	if werr := os.WriteFile(cfgPath, []byte(cfg), 0o644); werr != nil {
		t.Fatal(werr)
	}

	cmd := newRootCmd()
	var out, errb bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errb)
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))

	err = cmd.Execute()
	return out.String(), errb.String(), err
}

func TestRun_LocatesFiles(t *testing.T) {
	tmp := t.TempDir()
	event := filepath.Join(tmp, "ARCS_123_event.nxs")
	if err := os.WriteFile(event, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}

	h := &catalogHandler{
		instruments: []string{"ARCS"},
		locations:   map[string][]string{"ARCS_123_event.nxs": {event}},
	}

	stdout, _, err := runCommand(t, h, "ARCS", "123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout != event+"\n" {
		t.Errorf("expected located path on stdout, got %q", stdout)
	}
}

func TestRun_LowercaseInstrumentAccepted(t *testing.T) {
	tmp := t.TempDir()
	event := filepath.Join(tmp, "ARCS_123_event.nxs")
	if err := os.WriteFile(event, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}

	h := &catalogHandler{
		instruments: []string{"ARCS"},
		locations:   map[string][]string{"ARCS_123_event.nxs": {event}},
	}

	stdout, _, err := runCommand(t, h, "arcs", "123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout != event+"\n" {
		t.Errorf("expected located path on stdout, got %q", stdout)
	}
}

func TestRun_NotFoundContinuesOnStderr(t *testing.T) {
	tmp := t.TempDir()
	event := filepath.Join(tmp, "ARCS_123_event.nxs")
	if err := os.WriteFile(event, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}

	h := &catalogHandler{
		instruments: []string{"ARCS"},
		locations:   map[string][]string{"ARCS_123_event.nxs": {event}},
	}

	stdout, stderr, err := runCommand(t, h, "ARCS", "123,124")
	if err != nil {
		t.Fatalf("per-run misses must not fail the command: %v", err)
	}
	if stdout != event+"\n" {
		t.Errorf("expected only run 123 on stdout, got %q", stdout)
	}
	if !strings.Contains(stderr, "failed to find data for ARCS 124") {
		t.Errorf("expected the miss on stderr, got %q", stderr)
	}
}

func TestRun_GetProposal_RunOrder(t *testing.T) {
	h := &catalogHandler{
		instruments: []string{"NOM"},
		proposals: map[string]string{
			"NOM/300": "IPTS-3",
			"NOM/100": "IPTS-1",
		},
	}

	stdout, _, err := runCommand(t, h, "--getproposal", "NOM", "300,100")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "300 IPTS-3\n100 IPTS-1\n"
	if stdout != want {
		t.Errorf("expected %q, got %q", want, stdout)
	}
}

func TestRun_GetProposal_UnknownRun(t *testing.T) {
	h := &catalogHandler{instruments: []string{"NOM"}}

	stdout, _, err := runCommand(t, h, "--getproposal", "NOM", "999")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout != "999 Failed to find proposal\n" {
		t.Errorf("unexpected output %q", stdout)
	}
}

func TestRun_ListRuns(t *testing.T) {
	h := &catalogHandler{
		instruments: []string{"SEQ"},
		runRanges:   map[string]string{"SEQ/IPTS-1234": "4567 - 4630"},
	}

	stdout, _, err := runCommand(t, h, "--listruns", "SEQ", "IPTS-1234")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout != "4567-4630\n" {
		t.Errorf("expected the stripped range, got %q", stdout)
	}
}

func TestRun_ListRuns_UnknownProposal(t *testing.T) {
	h := &catalogHandler{instruments: []string{"SEQ"}}

	stdout, _, err := runCommand(t, h, "--listruns", "SEQ", "IPTS-9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout != "Failed to find runs in proposal IPTS-9\n" {
		t.Errorf("unexpected output %q", stdout)
	}
}

func TestRun_ListRuns_RequiresOneProposal(t *testing.T) {
	h := &catalogHandler{instruments: []string{"SEQ"}}

	_, _, err := runCommand(t, h, "--listruns", "SEQ")
	if err == nil {
		t.Fatal("expected an error")
	}
}

func TestRun_Filename_Found(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "NOM_5678_event.nxs")
	if err := os.WriteFile(path, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}

	h := &catalogHandler{locations: map[string][]string{"NOM_5678_event.nxs": {path}}}

	stdout, _, err := runCommand(t, h, "--filename", "NOM_5678_event.nxs")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout != path+"\n" {
		t.Errorf("expected the location, got %q", stdout)
	}
}

func TestRun_Filename_NotFoundFailsCommand(t *testing.T) {
	h := &catalogHandler{}

	_, _, err := runCommand(t, h, "--filename", "NOM_1_event.nxs")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "failed to find file NOM_1_event.nxs") {
		t.Errorf("unexpected error %v", err)
	}
}

func TestRun_UnknownInstrument(t *testing.T) {
	h := &catalogHandler{instruments: []string{"ARCS", "NOM"}}

	_, _, err := runCommand(t, h, "POWGEN", "1")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "unknown instrument") {
		t.Errorf("unexpected error %v", err)
	}
}

func TestRun_NoArguments(t *testing.T) {
	h := &catalogHandler{}

	_, _, err := runCommand(t, h)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "instrument is required") {
		t.Errorf("unexpected error %v", err)
	}
}

func TestRun_InvalidLoglevel(t *testing.T) {
	h := &catalogHandler{}

	_, _, err := runCommand(t, h, "--loglevel", "CHATTY", "ARCS", "1")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "unknown log level") {
		t.Errorf("unexpected error %v", err)
	}
}

func TestComplete_Loglevels(t *testing.T) {
	stdout, _, err := runCommand(t, &catalogHandler{}, "complete", "loglevels")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout != "DEBUG INFO WARNING\n" {
		t.Errorf("unexpected output %q", stdout)
	}
}

func TestComplete_Options(t *testing.T) {
	stdout, _, err := runCommand(t, &catalogHandler{}, "complete", "options")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"--filename", "--getproposal", "--listruns", "--loglevel", "--config", "--help", "--version"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected %s in %q", want, stdout)
		}
	}
}

func TestComplete_Instruments(t *testing.T) {
	h := &catalogHandler{instruments: []string{"ARCS", "BSS", "CNCS"}}

	stdout, _, err := runCommand(t, h, "complete", "instruments")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout != "ARCS BSS CNCS\n" {
		t.Errorf("unexpected output %q", stdout)
	}
}

func TestComplete_RejectsUnknownCategory(t *testing.T) {
	_, _, err := runCommand(t, &catalogHandler{}, "complete", "colors")
	if err == nil {
		t.Fatal("expected an error")
	}
}

func TestVersionFlag(t *testing.T) {
	stdout, _, err := runCommand(t, &catalogHandler{}, "--version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout, "finddata") {
		t.Errorf("unexpected version output %q", stdout)
	}
}

// --- helpers ---

func TestExpandAll(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	got := expandAll([]string{"1", "3-5", "1"}, log)
	want := []int{1, 3, 4, 5, 1}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expandAll[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

// --- command structure ---

func TestRootCmd_Flags(t *testing.T) {
	cmd := newRootCmd()
	for _, flag := range []string{"filename", "getproposal", "listruns"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("expected --%s flag on root command", flag)
		}
	}
	for _, flag := range []string{"loglevel", "config"} {
		if cmd.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("expected persistent --%s flag on root command", flag)
		}
	}
}

func TestRootCmd_RegistersComplete(t *testing.T) {
	cmd := newRootCmd()
	for _, sub := range cmd.Commands() {
		if strings.HasPrefix(sub.Use, "complete") {
			return
		}
	}
	t.Error("expected the complete subcommand to be registered")
}

// Registering complete must not make cobra treat instrument arguments
// as subcommand names.
func TestRootCmd_PositionalsNotTreatedAsSubcommands(t *testing.T) {
	h := &catalogHandler{instruments: []string{"ARCS"}}

	_, stderr, err := runCommand(t, h, "ARCS")
	if err != nil {
		t.Fatalf("instrument argument rejected: %v", err)
	}
	if strings.Contains(stderr, "unknown command") {
		t.Errorf("instrument argument hit subcommand matching: %q", stderr)
	}
}
