package progress_test

import (
	"testing"
	"time"

	"watchtrack/internal/progress"
)

var (
	t0 = time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
	t1 = t0.Add(10 * time.Second)
)

func TestRecordAccumulatesMinutes(t *testing.T) {
	ledger := progress.NewLedger(nil)

	ledger.Record(progress.Progress{Title: "X", Minutes: 5}, t0)
	if ledger.Len() != 1 {
		t.Fatalf("expected one record, got %d", ledger.Len())
	}
	rec := ledger.Record(progress.Progress{Title: "X", Minutes: 3}, t1)
	if rec.TotalMinutesWatched != 8 {
		t.Fatalf("expected 8 minutes, got %v", rec.TotalMinutesWatched)
	}
	if !rec.LastUpdated.Equal(t1) {
		t.Fatalf("expected last updated %v, got %v", t1, rec.LastUpdated)
	}
	if rec.IsFinished {
		t.Fatal("new record must not be finished")
	}
}

func TestRecordZeroMinutesIsIdempotent(t *testing.T) {
	ledger := progress.NewLedger(nil)
	ledger.Record(progress.Progress{Title: "X"}, t0)
	ledger.Record(progress.Progress{Title: "X"}, t1)
	rec, _ := ledger.Get("X")
	if rec.TotalMinutesWatched != 0 || ledger.Len() != 1 {
		t.Fatalf("unexpected state after zero-minute records: %+v (len %d)", rec, ledger.Len())
	}
}

func TestRecordClampsNegativeMinutes(t *testing.T) {
	ledger := progress.NewLedger(nil)
	ledger.Record(progress.Progress{Title: "X", Minutes: 2}, t0)
	rec := ledger.Record(progress.Progress{Title: "X", Minutes: -5}, t1)
	if rec.TotalMinutesWatched != 2 {
		t.Fatalf("expected total to stay 2, got %v", rec.TotalMinutesWatched)
	}
}

func TestRecordEpisodeAndResumeRules(t *testing.T) {
	ledger := progress.NewLedger(nil)
	resume := "00:41:10"
	ledger.Record(progress.Progress{Title: "X", Episode: "E1", SetResume: true, Resume: &resume}, t0)

	// Empty episode and unset resume leave both alone.
	rec := ledger.Record(progress.Progress{Title: "X"}, t1)
	if rec.Episode != "E1" || rec.ResumePosition == nil || *rec.ResumePosition != resume {
		t.Fatalf("expected episode and resume untouched, got %+v", rec)
	}

	rec = ledger.Record(progress.Progress{Title: "X", Episode: "E2"}, t1)
	if rec.Episode != "E2" {
		t.Fatalf("expected episode overwrite, got %q", rec.Episode)
	}

	// Explicit nil clears the resume position.
	rec = ledger.Record(progress.Progress{Title: "X", SetResume: true}, t1)
	if rec.ResumePosition != nil {
		t.Fatalf("expected resume cleared, got %q", *rec.ResumePosition)
	}
}

func TestTitleLookupIsCaseSensitive(t *testing.T) {
	ledger := progress.NewLedger(nil)
	ledger.Record(progress.Progress{Title: "Show"}, t0)
	ledger.Record(progress.Progress{Title: "show"}, t0)
	if ledger.Len() != 2 {
		t.Fatalf("expected two distinct records, got %d", ledger.Len())
	}
	if _, ok := ledger.Get("SHOW"); ok {
		t.Fatal("expected no match for different case")
	}
}

func TestMarkFinished(t *testing.T) {
	ledger := progress.NewLedger(nil)
	resume := "12:00"
	ledger.Record(progress.Progress{Title: "X", Episode: "E4", Minutes: 7, SetResume: true, Resume: &resume}, t0)

	if !ledger.MarkFinished("X", t1) {
		t.Fatal("expected MarkFinished to succeed")
	}
	rec, _ := ledger.Get("X")
	if !rec.IsFinished || rec.Episode != "" || rec.ResumePosition != nil {
		t.Fatalf("finished invariant violated: %+v", rec)
	}
	if rec.TotalMinutesWatched != 7 {
		t.Fatalf("finishing must not touch minutes, got %v", rec.TotalMinutesWatched)
	}

	if ledger.MarkFinished("missing", t1) {
		t.Fatal("expected false for unknown title")
	}
	if ledger.Len() != 1 {
		t.Fatalf("MarkFinished must not create records, len=%d", ledger.Len())
	}
}

func TestDeleteLeavesOthersUntouched(t *testing.T) {
	ledger := progress.NewLedger(nil)
	for i, title := range []string{"A", "B", "C"} {
		ledger.Record(progress.Progress{Title: title, Minutes: float64(i + 1)}, t0)
	}
	before := ledger.Records()

	if !ledger.Delete("B") {
		t.Fatal("expected delete to succeed")
	}
	if ledger.Delete("B") {
		t.Fatal("expected second delete to report false")
	}
	after := ledger.Records()
	if len(after) != 2 || after[0] != before[0] || after[1] != before[2] {
		t.Fatalf("unexpected records after delete: %+v", after)
	}
}

func TestSaveManual(t *testing.T) {
	ledger := progress.NewLedger(nil)
	ledger.Record(progress.Progress{Title: "X", Episode: "E1", Minutes: 30}, t0)
	ledger.MarkFinished("X", t0)

	if !ledger.SaveManual("  X ", " E9 ", " 01:02:03 ", t1) {
		t.Fatal("expected manual save to succeed")
	}
	rec, _ := ledger.Get("X")
	if rec.IsFinished || rec.Episode != "E9" || rec.ResumePosition == nil || *rec.ResumePosition != "01:02:03" {
		t.Fatalf("unexpected record after manual edit: %+v", rec)
	}
	if rec.TotalMinutesWatched != 30 {
		t.Fatalf("manual edit must not change minutes, got %v", rec.TotalMinutesWatched)
	}

	if !ledger.SaveManual("X", "", "   ", t1) {
		t.Fatal("expected manual save to succeed")
	}
	rec, _ = ledger.Get("X")
	if rec.Episode != "" || rec.ResumePosition != nil {
		t.Fatalf("expected blank edit to clear fields, got %+v", rec)
	}

	if !ledger.SaveManual("New Show", "E1", "", t1) {
		t.Fatal("expected creation via manual save")
	}
	created, ok := ledger.Get("New Show")
	if !ok || created.TotalMinutesWatched != 0 || created.ResumePosition != nil {
		t.Fatalf("unexpected created record: %+v", created)
	}

	if ledger.SaveManual("   ", "E1", "", t1) {
		t.Fatal("expected blank title to be rejected")
	}
}

func TestSummary(t *testing.T) {
	ledger := progress.NewLedger(nil)
	ledger.Record(progress.Progress{Title: "A", Minutes: 100}, t0)
	ledger.Record(progress.Progress{Title: "B", Minutes: 25.5}, t0)
	ledger.Record(progress.Progress{Title: "C"}, t0)
	ledger.MarkFinished("C", t0)

	got := ledger.Summary()
	want := progress.Summary{TotalItems: 3, InProgressItems: 2, FinishedItems: 1, TotalMinutes: 125.5, TotalTimeTracked: "2h 5m"}
	if got != want {
		t.Fatalf("Summary = %+v, want %+v", got, want)
	}
}

func TestNewLedgerDropsDuplicateTitles(t *testing.T) {
	ledger := progress.NewLedger([]progress.WatchRecord{
		{Title: "A", TotalMinutesWatched: 1},
		{Title: "A", TotalMinutesWatched: 9},
	})
	rec, _ := ledger.Get("A")
	if ledger.Len() != 1 || rec.TotalMinutesWatched != 1 {
		t.Fatalf("expected first entry kept, got %+v (len %d)", rec, ledger.Len())
	}
}

func TestRecordsReturnsCopies(t *testing.T) {
	resume := "5"
	ledger := progress.NewLedger([]progress.WatchRecord{{Title: "A", ResumePosition: &resume}})
	out := ledger.Records()
	*out[0].ResumePosition = "changed"
	rec, _ := ledger.Get("A")
	if *rec.ResumePosition != "5" {
		t.Fatalf("ledger state aliased by caller: %q", *rec.ResumePosition)
	}
}
