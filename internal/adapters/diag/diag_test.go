package diag_test

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	diag "github.com/okian/rondo/internal/adapters/diag"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNopSink(t *testing.T) {
	Convey("Given the nop sink", t, func() {
		sink := diag.Nop()

		Convey("When recording", func() {
			So(func() {
				sink.Record(context.Background(), diag.Entry{Stage: diag.StagePlan})
			}, ShouldNotPanic)
		})
	})
}

func TestMemorySink(t *testing.T) {
	Convey("Given a memory sink", t, func() {
		sink := diag.NewMemory()
		ctx := context.Background()

		Convey("When recording entries", func() {
			sink.Record(ctx, diag.Entry{SolveID: "s1", Stage: diag.StageBuild, Strategy: "snake_draft"})
			sink.Record(ctx, diag.Entry{SolveID: "s1", Stage: diag.StageSelect})

			Convey("Then they come back in order with timestamps", func() {
				entries := sink.Entries()
				So(len(entries), ShouldEqual, 2)
				So(entries[0].Stage, ShouldEqual, diag.StageBuild)
				So(entries[1].Stage, ShouldEqual, diag.StageSelect)
				So(entries[0].Time.IsZero(), ShouldBeFalse)
			})

			Convey("Then the returned slice is a copy", func() {
				entries := sink.Entries()
				entries[0].Stage = "mangled"
				So(sink.Entries()[0].Stage, ShouldEqual, diag.StageBuild)
			})

			Convey("Then reset clears it", func() {
				sink.Reset()
				So(len(sink.Entries()), ShouldEqual, 0)
			})
		})

		Convey("When recording from many goroutines", func() {
			var wg sync.WaitGroup
			for i := 0; i < 20; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					sink.Record(ctx, diag.Entry{Stage: diag.StageBuild})
				}()
			}
			wg.Wait()

			Convey("Then every entry lands", func() {
				So(len(sink.Entries()), ShouldEqual, 20)
			})
		})
	})
}

func TestFileSink(t *testing.T) {
	Convey("Given a file sink on a temp path", t, func() {
		path := filepath.Join(t.TempDir(), "diag.jsonl")
		sink, err := diag.NewFile(path)
		So(err, ShouldBeNil)
		ctx := context.Background()

		Convey("When recording two entries", func() {
			sink.Record(ctx, diag.Entry{SolveID: "s1", Stage: diag.StagePlan, RosterSize: 14})
			sink.Record(ctx, diag.Entry{SolveID: "s1", Stage: diag.StageResult, Score: 115})
			So(sink.Close(), ShouldBeNil)

			Convey("Then the file holds one valid JSON object per line", func() {
				f, err := os.Open(path)
				So(err, ShouldBeNil)
				defer f.Close()

				var lines []diag.Entry
				scanner := bufio.NewScanner(f)
				for scanner.Scan() {
					var e diag.Entry
					So(json.Unmarshal(scanner.Bytes(), &e), ShouldBeNil)
					lines = append(lines, e)
				}
				So(scanner.Err(), ShouldBeNil)
				So(len(lines), ShouldEqual, 2)
				So(lines[0].Stage, ShouldEqual, diag.StagePlan)
				So(lines[0].RosterSize, ShouldEqual, 14)
				So(lines[1].Score, ShouldEqual, 115)
			})
		})

		Convey("When reopening the same path", func() {
			sink.Record(ctx, diag.Entry{Stage: diag.StagePlan})
			So(sink.Close(), ShouldBeNil)

			second, err := diag.NewFile(path)
			So(err, ShouldBeNil)
			second.Record(ctx, diag.Entry{Stage: diag.StageResult})
			So(second.Close(), ShouldBeNil)

			Convey("Then entries append instead of truncating", func() {
				data, err := os.ReadFile(path)
				So(err, ShouldBeNil)
				count := 0
				for _, b := range data {
					if b == '\n' {
						count++
					}
				}
				So(count, ShouldEqual, 2)
			})
		})
	})
}
