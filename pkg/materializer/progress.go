package materializer

// Progress is a snapshot of a running copy
type Progress struct {
	Label          string
	Path           string
	ProcessedBytes int64
	TotalBytes     int64
}

// Fraction returns the processed share of the total in [0, 1]. An empty
// tree counts as complete.
func (p Progress) Fraction() float64 {
	if p.TotalBytes <= 0 {
		return 1
	}
	f := float64(p.ProcessedBytes) / float64(p.TotalBytes)
	if f > 1 {
		return 1
	}
	return f
}

// Reporter observes a copy. Calls arrive on the copying goroutine.
type Reporter interface {
	// Scanning is called before the size pass over path
	Scanning(label, path string)

	// Start is called once the total size is known
	Start(label string, totalBytes int64)

	// Progress is called after every file, copied or failed
	Progress(p Progress)

	// Finish is called when the walk ends, including on cancellation
	Finish(result *CopyResult)
}

// NopReporter discards all progress
type NopReporter struct{}

func (NopReporter) Scanning(string, string) {}
func (NopReporter) Start(string, int64) {}
func (NopReporter) Progress(Progress) {}
func (NopReporter) Finish(*CopyResult) {}
