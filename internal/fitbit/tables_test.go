package fitbit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return p
}

const dailyCSV = "Id,ActivityDate,TotalSteps,TotalDistance,TrackerDistance,VeryActiveMinutes,FairlyActiveMinutes,LightlyActiveMinutes,SedentaryMinutes,Calories\n" +
	"1503960366,4/12/2016,13162,8.5,8.5,25,13,328,728,1985\n" +
	"1503960366,4/13/2016,10735,6.97,6.97,21,19,217,776,1797\n" +
	"1624580081,4/12/2016,8163,5.31,5.31,0,0,146,1294,1432\n"

const sleepCSV = "Id,SleepDay,TotalSleepRecords,TotalMinutesAsleep,TotalTimeInBed\n" +
	"1503960366,4/12/2016 12:00:00 AM,1,327,346\n" +
	"1503960366,4/12/2016 12:00:00 AM,1,327,346\n" +
	"1503960366,4/13/2016 12:00:00 AM,2,384,407\n"

const hourlyStepsCSV = "Id,ActivityHour,StepTotal\n" +
	"1503960366,4/12/2016 12:00:00 AM,373\n" +
	"1503960366,4/12/2016 1:00:00 PM,684\n" +
	"1624580081,4/12/2016 11:00:00 PM,42\n"

func TestLoadDailyActivity(t *testing.T) {
	f, sum, err := LoadDailyActivity(writeFixture(t, "daily.csv", dailyCSV))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if f.NumRows() != 3 {
		t.Fatalf("rows = %d, want 3", f.NumRows())
	}
	for _, col := range []string{ColID, ColDate, ColTotalSteps, ColCalories,
		ColSedentaryMinutes, ColLightlyActiveMin, ColFairlyActiveMin, ColVeryActiveMin} {
		if !f.HasCol(col) {
			t.Errorf("missing column %s", col)
		}
	}
	if f.HasCol("total_distance") || f.HasCol("tracker_distance") {
		t.Fatal("distance columns should be dropped")
	}
	joined := strings.Join(sum.Dropped, ",")
	if !strings.Contains(joined, "total_distance") {
		t.Fatalf("dropped = %v, want total_distance reported", sum.Dropped)
	}
	id, _ := f.Col(ColID)
	if id.Kind().String() != "string" {
		t.Fatalf("id kind = %s, want string", id.Kind())
	}
}

func TestLoadSleepNormalizesDateAndDedups(t *testing.T) {
	f, sum, err := LoadSleep(writeFixture(t, "sleep.csv", sleepCSV))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if sum.RawRows != 3 || sum.Duplicates != 1 || f.NumRows() != 2 {
		t.Fatalf("raw=%d dup=%d rows=%d, want 3/1/2", sum.RawRows, sum.Duplicates, f.NumRows())
	}
	if f.HasCol("total_sleep_records") || f.HasCol("total_time_in_bed") {
		t.Fatal("redundant sleep columns should be dropped")
	}
	date, _ := f.Col(ColDate)
	want := time.Date(2016, 4, 12, 0, 0, 0, 0, time.UTC)
	if !date.Time(0).Equal(want) {
		t.Fatalf("sleep date = %v, want midnight %v", date.Time(0), want)
	}
}

func TestLoadHourlyStepsDerivesHour(t *testing.T) {
	f, _, err := LoadHourlySteps(writeFixture(t, "steps.csv", hourlyStepsCSV))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	hour, err := f.Col(ColHour)
	if err != nil {
		t.Fatal(err)
	}
	got := []float64{hour.Float(0), hour.Float(1), hour.Float(2)}
	want := []float64{0, 13, 23}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("hour[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLoadFailsOnMalformedDate(t *testing.T) {
	bad := "Id,ActivityDate,TotalSteps,VeryActiveMinutes,FairlyActiveMinutes,LightlyActiveMinutes,SedentaryMinutes,Calories\n" +
		"1,2016-04-12,10,1,1,1,1,100\n"
	_, _, err := LoadDailyActivity(writeFixture(t, "bad.csv", bad))
	if err == nil || !strings.Contains(err.Error(), "invalid date value") {
		t.Fatalf("err = %v, want invalid date value", err)
	}
}

func TestLoadAllAbortsOnFirstError(t *testing.T) {
	daily := writeFixture(t, "daily.csv", dailyCSV)
	_, _, err := LoadAll(Paths{
		DailyActivity:  daily,
		Sleep:          filepath.Join(t.TempDir(), "missing.csv"),
		HourlySteps:    daily,
		HourlyCalories: daily,
	})
	if err == nil {
		t.Fatal("expected error for missing sleep file")
	}
}
