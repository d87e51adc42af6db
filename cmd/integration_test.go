package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	itDailyCSV = `Id,ActivityDate,TotalSteps,Calories,SedentaryMinutes,LightlyActiveMinutes,FairlyActiveMinutes,VeryActiveMinutes
1503960366,4/12/2016,13162,1985,728,328,13,25
1503960366,4/13/2016,10735,1797,776,217,19,21
1624580081,4/12/2016,8163,1432,1218,146,6,8
1624580081,4/13/2016,7007,1970,735,245,11,30
`
	itSleepCSV = `Id,SleepDay,TotalSleepRecords,TotalMinutesAsleep,TotalTimeInBed
1503960366,4/12/2016 12:00:00 AM,1,327,346
1503960366,4/13/2016 12:00:00 AM,2,384,407
1624580081,4/12/2016 12:00:00 AM,1,432,449
`
	itHourlyStepsCSV = `Id,ActivityHour,StepTotal
1503960366,4/12/2016 12:00:00 AM,373
1503960366,4/12/2016 1:00:00 PM,1352
1624580081,4/12/2016 12:00:00 AM,0
1624580081,4/12/2016 1:00:00 PM,721
`
	itHourlyCaloriesCSV = `Id,ActivityHour,Calories
1503960366,4/12/2016 12:00:00 AM,81
1503960366,4/12/2016 1:00:00 PM,153
1624580081,4/12/2016 12:00:00 AM,47
1624580081,4/12/2016 1:00:00 PM,99
`
)

// runCmd executes the root command with args, resetting the shared input
// flags so Changed state does not leak between invocations.
func runCmd(t *testing.T, args ...string) {
	t.Helper()
	flagDaily, flagSleep, flagHourlySteps, flagHourlyCalories = "", "", "", ""
	repOutDir = ""
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
}

func writeInputs(t *testing.T) (dir string) {
	t.Helper()
	dir = t.TempDir()
	fixtures := map[string]string{
		"dailyActivity_merged.csv":  itDailyCSV,
		"sleepDay_merged.csv":       itSleepCSV,
		"hourlySteps_merged.csv":    itHourlyStepsCSV,
		"hourlyCalories_merged.csv": itHourlyCaloriesCSV,
	}
	for name, body := range fixtures {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write fixture %s: %v", name, err)
		}
	}
	return dir
}

func inputArgs(dir string) []string {
	return []string{
		"--daily", filepath.Join(dir, "dailyActivity_merged.csv"),
		"--sleep", filepath.Join(dir, "sleepDay_merged.csv"),
		"--hourly-steps", filepath.Join(dir, "hourlySteps_merged.csv"),
		"--hourly-calories", filepath.Join(dir, "hourlyCalories_merged.csv"),
	}
}

func TestCLI_ReportEndToEnd(t *testing.T) {
	home := t.TempDir()
	oldHome := os.Getenv("HOME")
	defer os.Setenv("HOME", oldHome)
	os.Setenv("HOME", home)

	dir := writeInputs(t)
	out := filepath.Join(home, "out")
	args := append([]string{"report", "-o", out}, inputArgs(dir)...)
	runCmd(t, args...)

	body, err := os.ReadFile(filepath.Join(out, "report.md"))
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	md := string(body)
	for _, want := range []string{"## Daily averages", "## Correlations", "steps_by_weekday.png"} {
		if !strings.Contains(md, want) {
			t.Errorf("report missing %q", want)
		}
	}
	charts, err := os.ReadDir(filepath.Join(out, "charts"))
	if err != nil {
		t.Fatalf("read charts dir: %v", err)
	}
	if len(charts) != 5 {
		t.Fatalf("chart count = %d, want 5", len(charts))
	}
}

func TestCLI_ValidateAndStats(t *testing.T) {
	home := t.TempDir()
	oldHome := os.Getenv("HOME")
	defer os.Setenv("HOME", oldHome)
	os.Setenv("HOME", home)

	dir := writeInputs(t)
	runCmd(t, append([]string{"validate"}, inputArgs(dir)...)...)
	runCmd(t, append([]string{"stats"}, inputArgs(dir)...)...)
}

func TestCLI_ValidateFailsOnMissingInput(t *testing.T) {
	home := t.TempDir()
	oldHome := os.Getenv("HOME")
	defer os.Setenv("HOME", oldHome)
	os.Setenv("HOME", home)

	flagDaily, flagSleep, flagHourlySteps, flagHourlyCalories = "", "", "", ""
	rootCmd.SetArgs([]string{"validate", "--daily", filepath.Join(home, "nope.csv")})
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected error for missing input file")
	}
}
