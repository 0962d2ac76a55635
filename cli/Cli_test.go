package cli

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/flappyq/agent/tabular/qtable"
	"github.com/samuelfneumann/flappyq/environment/replay"
	"github.com/samuelfneumann/flappyq/experiment/trackers"
	"github.com/samuelfneumann/flappyq/game"
	"github.com/samuelfneumann/flappyq/state"
)

// run executes the root command with args and returns its output
func run(t *testing.T, args ...string) (string, error) {
	var out, errOut bytes.Buffer
	root := RootCommand()
	root.SetArgs(append([]string{"--log-level", "error"}, args...))
	root.SetOut(&out)
	root.SetErr(&errOut)

	err := root.Execute()
	return out.String(), err
}

// writeTransitions writes episodes of recorded transitions in which the
// player falls through a gap
func writeTransitions(t *testing.T, path string, episodes int) {
	file, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	w := replay.NewWriter(file)
	for e := 0; e < episodes; e++ {
		obs := game.Observation{
			PlayerY:             100 + float64(e),
			NextPipeDist:        120,
			NextPipeTopY:        100,
			NextPipeBottomY:     200,
			NextNextPipeDist:    260,
			NextNextPipeTopY:    80,
			NextNextPipeBottomY: 180,
		}
		for step := 0; step < 10; step++ {
			next := obs
			next.PlayerY += 15
			next.PlayerVel = float64(step)
			next.NextPipeDist -= 10

			action := game.Noop
			if step%3 == 0 {
				action = game.Flap
			}
			err := w.Write(replay.Transition{
				Observation: obs,
				Action:      action,
				Reward:      1,
				Next:        next,
				Done:        step == 9,
				Terminal:    step == 9,
			})
			if err != nil {
				t.Fatal(err)
			}
			obs = next
		}
	}
}

func TestLearnInspectExportAct(t *testing.T) {
	dir := t.TempDir()
	transitions := filepath.Join(dir, "transitions.jsonl")
	table := filepath.Join(dir, "q_table.gob")
	writeTransitions(t, transitions, 4)

	_, err := run(t, "learn", transitions, "--out", table, "--no-progress",
		"--checkpoint-every", "2", "--checkpoint-path",
		filepath.Join(dir, "checkpoint.gob"), "--lengths",
		filepath.Join(dir, "lengths.bin"))
	if err != nil {
		t.Fatalf("learn: %v", err)
	}
	for _, name := range []string{"q_table.gob", "checkpoint.gob",
		"lengths.bin"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("learn: expected %v: %v", name, err)
		}
	}

	loaded, err := qtable.Load(table, game.DefaultActions())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Len() == 0 {
		t.Fatal("learn: empty value table")
	}

	out, err := run(t, "inspect", table, "--all")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if !strings.Contains(out, "states:") || !strings.Contains(out, "greedy") {
		t.Errorf("inspect: unexpected output %q", out)
	}

	out, err = run(t, "export", table)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	lines := 0
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		if !strings.HasPrefix(scanner.Text(), `{"code":[`) {
			t.Errorf("export: unexpected line %q", scanner.Text())
		}
		lines++
	}
	if lines != loaded.Len() {
		t.Errorf("export: expected %v lines, got %v", loaded.Len(), lines)
	}

	out, err = run(t, "act", "--table", table,
		`{"player_y": 100, "next_pipe_top_y": 100, "next_pipe_bottom_y": 200}`)
	if err != nil {
		t.Fatalf("act: %v", err)
	}
	if !strings.Contains(out, "code: (") || !strings.Contains(out, "action: ") {
		t.Errorf("act: unexpected output %q", out)
	}
}

func TestLearnUnknownAction(t *testing.T) {
	dir := t.TempDir()
	transitions := filepath.Join(dir, "transitions.jsonl")
	writeTransitions(t, transitions, 1)

	// Without Flap in the action set, every other transition is invalid
	_, err := run(t, "--actions", "0", "learn", transitions, "--no-progress",
		"--out", filepath.Join(dir, "t.gob"))
	if err == nil {
		t.Error("learn: expected error for unknown action")
	}

	_, err = run(t, "--actions", "0", "learn", transitions, "--no-progress",
		"--skip-invalid", "--out", filepath.Join(dir, "t.gob"))
	if err != nil {
		t.Errorf("learn: expected invalid transitions to be skipped: %v", err)
	}
}

func TestLearnConfigFile(t *testing.T) {
	dir := t.TempDir()
	transitions := filepath.Join(dir, "transitions.jsonl")
	writeTransitions(t, transitions, 3)

	config := filepath.Join(dir, "config.json")
	err := os.WriteFile(config, []byte(`{"max_episodes": 1, `+
		`"agent": {"learning_rate": 0.5}}`), 0644)
	if err != nil {
		t.Fatal(err)
	}

	lengths := filepath.Join(dir, "lengths.bin")
	_, err = run(t, "learn", transitions, "--config", config,
		"--no-progress", "--episodes", "2", "--lengths", lengths,
		"--out", filepath.Join(dir, "t.gob"))
	if err != nil {
		t.Fatalf("learn: %v", err)
	}

	// The flag takes precedence over the file
	data, err := trackers.LoadData(lengths)
	if err != nil {
		t.Fatalf("loadData: %v", err)
	}
	if len(data) != 2 {
		t.Errorf("learn: expected 2 episodes, got %v", len(data))
	}
}

func TestFitAndActWeights(t *testing.T) {
	dir := t.TempDir()
	tablePath := filepath.Join(dir, "q_table.gob")
	weights := filepath.Join(dir, "weights.gob")

	table := qtable.New(game.DefaultActions())
	for _, c := range state.AllCodes() {
		x := mat.NewVecDense(state.Features, c.Floats())
		v := table.GetOrInsert(c)
		v.SetVec(0, mat.Sum(x))
		v.SetVec(1, 2*x.AtVec(state.PlayerPos)+1)
	}
	if err := table.Save(tablePath); err != nil {
		t.Fatal(err)
	}

	if _, err := run(t, "fit", tablePath, "--out", weights); err != nil {
		t.Fatalf("fit: %v", err)
	}

	out, err := run(t, "act", "--weights", weights,
		`{"player_y": 150, "next_pipe_top_y": 100, "next_pipe_bottom_y": 200}`)
	if err != nil {
		t.Fatalf("act: %v", err)
	}
	if !strings.Contains(out, "action: ") {
		t.Errorf("act: unexpected output %q", out)
	}
}

func TestErrors(t *testing.T) {
	dir := t.TempDir()

	tests := map[string][]string{
		"log format":   {"--log-format", "xml", "inspect", "x"},
		"log level":    {"--log-level", "loud", "inspect", "x"},
		"missing":      {"inspect", filepath.Join(dir, "missing.gob")},
		"act flags":    {"act", "{}"},
		"duplicate":    {"--actions", "0,0", "inspect", "x"},
		"fit missing":  {"fit", filepath.Join(dir, "missing.gob")},
		"learn no arg": {"learn"},
	}
	for name, args := range tests {
		if _, err := run(t, args...); err == nil {
			t.Errorf("%v: expected error", name)
		}
	}
}

func TestLearnConfigFileWithActions(t *testing.T) {
	dir := t.TempDir()
	transitions := filepath.Join(dir, "transitions.jsonl")
	writeTransitions(t, transitions, 2)

	config := filepath.Join(dir, "config.json")
	err := os.WriteFile(config, []byte(`{"agent": {"actions": [0]}}`), 0644)
	if err != nil {
		t.Fatal(err)
	}

	// --actions overrides the file, so no transition is invalid
	table := filepath.Join(dir, "t.gob")
	_, err = run(t, "--actions", "119,0", "learn", transitions, "--config",
		config, "--no-progress", "--out", table)
	if err != nil {
		t.Fatalf("learn: %v", err)
	}
	if _, err := qtable.Load(table, game.DefaultActions()); err != nil {
		t.Errorf("load: %v", err)
	}
}
