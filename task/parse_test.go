package task

import (
	"reflect"
	"testing"
)

const checkboxDoc = `# Story 4: Task Tooling

## Tasks

- [x] **Task 1.1**: Define the data model
  - Description: Status enum and task struct
  - Files: task/types.go
  - Dependencies: none
- [~] **Task 1.2**: Build the parsers
  - Description: Two front-ends, one representation
  - Files: task/parse_checkbox.go, task/parse_heading.go
  - Criteria: both conventions parse; unknown lines pass through
  - Dependencies: 1.1
- [ ] **Task 1.3**: Wire the picker
  - Dependencies: 1.1, 1.2
- [!] **Task 2.1**: Ship it
`

const headingDoc = `## Phase 5: Decompose

#### Task 1.1: Define the data model
**Status**: complete
**Description**: Status enum and task struct
**Files**: task/types.go

#### Task 1.2: Build the parsers
**Status**: [~] in progress
**Dependencies**: 1.1

#### Task 1.3: Wire the picker
**Dependencies**: 1.1, 1.2
`

func TestParseCheckboxDocument(t *testing.T) {
	doc := Parse([]byte(checkboxDoc))

	tasks := doc.Tasks()
	if len(tasks) != 4 {
		t.Fatalf("expected 4 tasks, got %d", len(tasks))
	}

	first := tasks[0]
	if first.ID != "1.1" {
		t.Errorf("expected id 1.1, got %s", first.ID)
	}
	if first.Title != "Define the data model" {
		t.Errorf("unexpected title: %q", first.Title)
	}
	if first.Status != StatusComplete {
		t.Errorf("expected complete, got %s", first.Status)
	}
	if first.Description != "Status enum and task struct" {
		t.Errorf("unexpected description: %q", first.Description)
	}
	if !reflect.DeepEqual(first.Files, []string{"task/types.go"}) {
		t.Errorf("unexpected files: %v", first.Files)
	}
	if len(first.Dependencies) != 0 {
		t.Errorf("dependencies 'none' should parse empty, got %v", first.Dependencies)
	}

	second := tasks[1]
	if second.Status != StatusInProgress {
		t.Errorf("expected in_progress, got %s", second.Status)
	}
	if !reflect.DeepEqual(second.Files, []string{"task/parse_checkbox.go", "task/parse_heading.go"}) {
		t.Errorf("unexpected files: %v", second.Files)
	}
	if !reflect.DeepEqual(second.Criteria, []string{"both conventions parse", "unknown lines pass through"}) {
		t.Errorf("unexpected criteria: %v", second.Criteria)
	}
	if !reflect.DeepEqual(second.Dependencies, []ID{"1.1"}) {
		t.Errorf("unexpected dependencies: %v", second.Dependencies)
	}

	third := tasks[2]
	if third.Status != StatusIncomplete {
		t.Errorf("expected incomplete, got %s", third.Status)
	}
	if !reflect.DeepEqual(third.Dependencies, []ID{"1.1", "1.2"}) {
		t.Errorf("unexpected dependencies: %v", third.Dependencies)
	}

	if tasks[3].Status != StatusBlocked {
		t.Errorf("expected blocked, got %s", tasks[3].Status)
	}
}

func TestParseHeadingDocument(t *testing.T) {
	doc := Parse([]byte(headingDoc))

	tasks := doc.Tasks()
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(tasks))
	}

	if tasks[0].Status != StatusComplete {
		t.Errorf("expected complete, got %s", tasks[0].Status)
	}
	if tasks[0].Description != "Status enum and task struct" {
		t.Errorf("unexpected description: %q", tasks[0].Description)
	}

	if tasks[1].Status != StatusInProgress {
		t.Errorf("marker-prefixed status should parse, got %s", tasks[1].Status)
	}
	if !reflect.DeepEqual(tasks[1].Dependencies, []ID{"1.1"}) {
		t.Errorf("unexpected dependencies: %v", tasks[1].Dependencies)
	}

	if tasks[2].Status != StatusIncomplete {
		t.Errorf("task without status line should be incomplete, got %s", tasks[2].Status)
	}
}

func TestParseConventionsAgree(t *testing.T) {
	checkbox := Parse([]byte("- [~] **Task 3.2**: Same task\n" +
		"  - Description: identical fields\n" +
		"  - Files: a.go, b.go\n" +
		"  - Criteria: one; two\n" +
		"  - Dependencies: 3.1\n"))
	heading := Parse([]byte("#### Task 3.2: Same task\n" +
		"**Status**: in_progress\n" +
		"**Description**: identical fields\n" +
		"**Files**: a.go, b.go\n" +
		"**Criteria**: one; two\n" +
		"**Dependencies**: 3.1\n"))

	ct := checkbox.Tasks()
	ht := heading.Tasks()
	if len(ct) != 1 || len(ht) != 1 {
		t.Fatalf("expected 1 task from each convention, got %d and %d", len(ct), len(ht))
	}

	got, want := ct[0], ht[0]
	if got.ID != want.ID || got.Title != want.Title || got.Status != want.Status ||
		got.Description != want.Description ||
		!reflect.DeepEqual(got.Files, want.Files) ||
		!reflect.DeepEqual(got.Criteria, want.Criteria) ||
		!reflect.DeepEqual(got.Dependencies, want.Dependencies) {
		t.Errorf("conventions disagree:\ncheckbox: %+v\nheading:  %+v", got, want)
	}
}

func TestParseUnrecognizedDocument(t *testing.T) {
	doc := Parse([]byte("just some prose\n\nwith - bullets\nand [brackets]\n"))
	if len(doc.Tasks()) != 0 {
		t.Errorf("expected no tasks, got %d", len(doc.Tasks()))
	}
}

func TestParseEmptyDocument(t *testing.T) {
	doc := Parse(nil)
	if len(doc.Tasks()) != 0 {
		t.Errorf("expected no tasks, got %d", len(doc.Tasks()))
	}
	if len(doc.Bytes()) != 0 {
		t.Errorf("empty document should render empty, got %q", doc.Bytes())
	}
}

func TestParseDuplicateIDFirstWins(t *testing.T) {
	doc := Parse([]byte("- [x] **Task 1.1**: First\n- [ ] **Task 1.1**: Second\n"))

	tasks := doc.Tasks()
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	if tasks[0].Title != "First" {
		t.Errorf("first occurrence should win, got %q", tasks[0].Title)
	}
	if tasks[0].Status != StatusComplete {
		t.Errorf("expected complete, got %s", tasks[0].Status)
	}
}

func TestParseUnknownMarkerDegradesToIncomplete(t *testing.T) {
	doc := Parse([]byte("- [?] **Task 1.1**: Odd marker\n"))

	tasks := doc.Tasks()
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	if tasks[0].Status != StatusIncomplete {
		t.Errorf("unknown marker should degrade to incomplete, got %s", tasks[0].Status)
	}
}

func TestParseUppercaseMarker(t *testing.T) {
	doc := Parse([]byte("- [X] **Task 1.1**: Done\n"))

	tasks := doc.Tasks()
	if len(tasks) != 1 || tasks[0].Status != StatusComplete {
		t.Fatalf("expected one complete task, got %+v", tasks)
	}
}

func TestParseUnboldedTaskLine(t *testing.T) {
	doc := Parse([]byte("- [ ] Task 2.3: No bold here\n"))

	tasks := doc.Tasks()
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	if tasks[0].ID != "2.3" || tasks[0].Title != "No bold here" {
		t.Errorf("unexpected task: %+v", tasks[0])
	}
}

func TestParseFieldBlockStopsAtHeading(t *testing.T) {
	doc := Parse([]byte("#### Task 1.1: First\n" +
		"**Status**: complete\n" +
		"## Notes\n" +
		"**Description**: belongs to nobody\n"))

	tasks := doc.Tasks()
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	if tasks[0].Description != "" {
		t.Errorf("field after section heading should not attach, got %q", tasks[0].Description)
	}
}

func TestRoundTripPreservesBytes(t *testing.T) {
	inputs := []string{
		checkboxDoc,
		headingDoc,
		"no trailing newline",
		"crlf line one\r\ncrlf line two\r\n",
		"- [ ] **Task 9.9**: mixed\r\nplain\n",
		"",
	}

	for _, input := range inputs {
		doc := Parse([]byte(input))
		if got := string(doc.Bytes()); got != input {
			t.Errorf("round trip changed bytes:\n in: %q\nout: %q", input, got)
		}
	}
}
