package disc

import (
	"context"
	"strings"
	"testing"
)

const sampleInfoOutput = `MSG:1005,0,1,"MakeMKV v1.17.7 linux(x64-release) started","%1 started","MakeMKV v1.17.7 linux(x64-release)"
CINFO:1,6209,"DVD disc"
CINFO:2,0,"ONE_PIECE_S1D1"
CINFO:32,0,"ONE_PIECE_S1D1"
DRV:0,2,999,1,"DVD+R-DL ASUS DRW-24B1ST","ONE_PIECE_S1D1","/dev/sr0"
DRV:1,256,999,0,"","",""
TINFO:0,2,0,"Title 00"
TINFO:0,9,0,"2:59:44"
TINFO:0,10,0,"6.1 GB"
TINFO:0,11,0,"6593933312"
TINFO:0,25,0,"12"
TINFO:0,26,0,"1,45-50,90"
TINFO:0,27,0,"title_t00.mkv"
TINFO:1,2,0,"Title 01"
TINFO:1,9,0,"0:04:12"
TINFO:1,10,0,"98.2 MB"
TINFO:1,11,0,"102973440"
TINFO:1,27,0,"title_t01.mkv"
`

type fakeExecutor struct {
	output []byte
	err    error
	args   []string
}

func (f *fakeExecutor) Run(_ context.Context, _ string, args []string) ([]byte, error) {
	f.args = args
	return f.output, f.err
}

func TestScanParsesInfoOutput(t *testing.T) {
	exec := &fakeExecutor{output: []byte(sampleInfoOutput)}
	scanner := NewScannerWithExecutor("makemkvcon", exec)

	result, err := scanner.Scan(context.Background(), "/dev/sr0")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if result.DiscName != "ONE_PIECE_S1D1" {
		t.Fatalf("disc name = %q", result.DiscName)
	}
	if result.Device != "/dev/sr0" {
		t.Fatalf("device = %q", result.Device)
	}
	if len(result.Titles) != 2 {
		t.Fatalf("titles = %d", len(result.Titles))
	}
	first := result.Titles[0]
	if first.SizeBytes != 6593933312 || first.SizeHuman != "6.1 GB" {
		t.Fatalf("size parse failed: %+v", first)
	}
	if first.SegmentMap != "1,45-50,90" {
		t.Fatalf("segment map = %q", first.SegmentMap)
	}
	if first.OutputFileName != "title_t00.mkv" {
		t.Fatalf("output file = %q", first.OutputFileName)
	}
	if first.DurationSeconds != 2*3600+59*60+44 {
		t.Fatalf("duration = %d", first.DurationSeconds)
	}
	if got := strings.Join(exec.args, " "); got != "-r --cache=1 info dev:/dev/sr0" {
		t.Fatalf("args = %q", got)
	}
}

func TestScanEmptyOutputFails(t *testing.T) {
	scanner := NewScannerWithExecutor("makemkvcon", &fakeExecutor{output: []byte("  ")})
	if _, err := scanner.Scan(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty output")
	}
}

func TestParseDriveSkipsEmptySlots(t *testing.T) {
	result := &ScanResult{}
	parseDrive(result, `1,256,999,0,"","",""`)
	if result.Device != "" {
		t.Fatalf("empty drive slot should be ignored, got %q", result.Device)
	}
}

func TestSplitQuotedKeepsCommasInQuotes(t *testing.T) {
	fields := splitQuoted(`0,2,999,1,"A, B","NAME","/dev/sr0"`)
	if len(fields) != 7 {
		t.Fatalf("fields = %v", fields)
	}
	if unquote(fields[4]) != "A, B" {
		t.Fatalf("quoted comma broken: %q", fields[4])
	}
}

func TestNormalizeDeviceArg(t *testing.T) {
	if got := normalizeDeviceArg(""); got != "disc:0" {
		t.Fatalf("empty = %q", got)
	}
	if got := normalizeDeviceArg("/dev/sr1"); got != "dev:/dev/sr1" {
		t.Fatalf("path = %q", got)
	}
	if got := normalizeDeviceArg("disc:2"); got != "disc:2" {
		t.Fatalf("spec = %q", got)
	}
}
