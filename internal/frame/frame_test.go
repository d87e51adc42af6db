package frame

import (
	"strings"
	"testing"
	"time"
)

func TestNormalizeName(t *testing.T) {
	cases := map[string]string{
		"Id":                  "id",
		"TotalSteps":          "total_steps",
		"VeryActiveMinutes":   "very_active_minutes",
		"ActivityHour":        "activity_hour",
		"StepTotal":           "step_total",
		"Total Sleep Records": "total_sleep_records",
		"  SleepDay ":         "sleep_day",
		"already_snake":       "already_snake",
	}
	for in, want := range cases {
		if got := NormalizeName(in); got != want {
			t.Errorf("NormalizeName(%q) = %q, want %q", in, got, want)
		}
	}
}

func testSchema() Schema {
	return Schema{Fields: []Field{
		{Source: "id", Kind: String},
		{Source: "activity_date", Name: "date", Kind: Date, Layouts: []string{"1/2/2006"}},
		{Source: "total_steps", Kind: Float},
	}}
}

func TestReadCSVTypesAndDedup(t *testing.T) {
	in := "Id,ActivityDate,TotalSteps,TotalDistance\n" +
		"1503960366,4/12/2016,13162,8.5\n" +
		"1503960366,4/12/2016,13162,8.5\n" +
		"1624580081,4/13/2016,,1.2\n"
	res, err := ReadCSV(strings.NewReader(in), "daily_activity", testSchema())
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if res.RawRows != 3 {
		t.Fatalf("raw rows = %d, want 3", res.RawRows)
	}
	if res.Duplicates != 1 {
		t.Fatalf("duplicates = %d, want 1", res.Duplicates)
	}
	f := res.Frame
	if f.NumRows() != 2 {
		t.Fatalf("rows = %d, want 2", f.NumRows())
	}
	if len(res.Dropped) != 1 || res.Dropped[0] != "total_distance" {
		t.Fatalf("dropped = %v, want [total_distance]", res.Dropped)
	}

	id, err := f.Col("id")
	if err != nil {
		t.Fatal(err)
	}
	if id.Kind() != String || id.Str(0) != "1503960366" {
		t.Fatalf("id[0] = %q kind %v", id.Str(0), id.Kind())
	}
	date, err := f.Col("date")
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2016, 4, 12, 0, 0, 0, 0, time.UTC)
	if !date.Time(0).Equal(want) {
		t.Fatalf("date[0] = %v, want %v", date.Time(0), want)
	}
	steps, err := f.Col("total_steps")
	if err != nil {
		t.Fatal(err)
	}
	if !steps.IsNull(1) {
		t.Fatal("empty numeric cell should be null")
	}
}

func TestReadCSVLoadErrors(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"malformed date", "Id,ActivityDate,TotalSteps\n1,2016-04-12,10\n", "invalid date value"},
		{"empty date", "Id,ActivityDate,TotalSteps\n1,,10\n", "empty date value"},
		{"non-numeric", "Id,ActivityDate,TotalSteps\n1,4/12/2016,lots\n", "invalid numeric value"},
		{"missing column", "Id,TotalSteps\n1,10\n", "missing required column activity_date"},
	}
	for _, tc := range cases {
		_, err := ReadCSV(strings.NewReader(tc.in), "daily_activity", testSchema())
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Errorf("%s: err = %v, want containing %q", tc.name, err, tc.want)
		}
	}
}

func TestDedupIdempotent(t *testing.T) {
	c := NewColumn("id", String)
	c.AppendString("a")
	c.AppendString("a")
	c.AppendNull()
	c.AppendNull()
	v := NewColumn("v", Float)
	v.AppendFloat(1)
	v.AppendFloat(1)
	v.AppendNull()
	v.AppendNull()
	f, err := New("t", c, v)
	if err != nil {
		t.Fatal(err)
	}
	once := f.Dedup()
	if once.NumRows() != 2 {
		t.Fatalf("deduped rows = %d, want 2", once.NumRows())
	}
	twice := once.Dedup()
	if twice.NumRows() != once.NumRows() {
		t.Fatalf("dedup not idempotent: %d then %d rows", once.NumRows(), twice.NumRows())
	}
}

func buildKeyed(t *testing.T, name string, ids []string, valName string, vals []float64) *Frame {
	t.Helper()
	id := NewColumn("id", String)
	v := NewColumn(valName, Float)
	for i := range ids {
		id.AppendString(ids[i])
		v.AppendFloat(vals[i])
	}
	f, err := New(name, id, v)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestOuterJoinKeepsBothSides(t *testing.T) {
	left := buildKeyed(t, "steps", []string{"a", "b", "c"}, "steps", []float64{10, 20, 30})
	right := buildKeyed(t, "cals", []string{"b", "c", "d"}, "cals", []float64{2, 3, 4})

	j, err := OuterJoin(left, right, []string{"id"})
	if err != nil {
		t.Fatalf("OuterJoin: %v", err)
	}
	if j.NumRows() != 4 {
		t.Fatalf("joined rows = %d, want 4", j.NumRows())
	}
	id, _ := j.Col("id")
	steps, _ := j.Col("steps")
	cals, _ := j.Col("cals")

	byID := map[string]int{}
	for i := 0; i < j.NumRows(); i++ {
		byID[id.Str(i)] = i
	}
	for _, k := range []string{"a", "b", "c", "d"} {
		if _, ok := byID[k]; !ok {
			t.Fatalf("key %s dropped by outer join", k)
		}
	}
	if !cals.IsNull(byID["a"]) {
		t.Fatal("left-only row should have null right column")
	}
	if !steps.IsNull(byID["d"]) {
		t.Fatal("right-only row should have null left column")
	}
	if steps.Float(byID["b"]) != 20 || cals.Float(byID["b"]) != 2 {
		t.Fatal("matched row has wrong values")
	}
}

func TestOuterJoinRejectsMismatchedKinds(t *testing.T) {
	left := buildKeyed(t, "l", []string{"a"}, "x", []float64{1})
	idNum := NewColumn("id", Float)
	idNum.AppendFloat(1)
	y := NewColumn("y", Float)
	y.AppendFloat(2)
	right, err := New("r", idNum, y)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := OuterJoin(left, right, []string{"id"}); err == nil {
		t.Fatal("expected kind-mismatch error")
	}
}

func TestRenameAndWithColumn(t *testing.T) {
	f := buildKeyed(t, "t", []string{"a"}, "v", []float64{1})
	r, err := f.Rename("v", "value")
	if err != nil {
		t.Fatal(err)
	}
	if !r.HasCol("value") || r.HasCol("v") {
		t.Fatalf("rename failed: %v", r.Names())
	}
	if !f.HasCol("v") {
		t.Fatal("rename mutated the source frame")
	}
	extra := NewColumn("w", Float)
	extra.AppendFloat(9)
	w, err := r.WithColumn(extra)
	if err != nil {
		t.Fatal(err)
	}
	if w.NumCols() != 3 {
		t.Fatalf("cols = %d, want 3", w.NumCols())
	}
}
