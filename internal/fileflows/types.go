package fileflows

import "strings"

// ServerStatus mirrors the payload of /api/status and /remote/info/status.
// Both families report the same queue counters with lowercase keys.
type ServerStatus struct {
	Queue           int              `json:"queue"`
	Processing      int              `json:"processing"`
	Processed       int              `json:"processed"`
	Time            string           `json:"time"`
	ProcessingFiles []ProcessingFile `json:"processingFiles"`
}

// ProcessingFile describes one file currently being worked on.
type ProcessingFile struct {
	Name     string  `json:"name"`
	Step     string  `json:"step"`
	Relative string  `json:"relative"`
	Library  string  `json:"library"`
	Percent  float64 `json:"percent"`
}

// DisplayName returns the most readable identifier the server supplied.
func (p ProcessingFile) DisplayName() string {
	if name := strings.TrimSpace(p.Relative); name != "" {
		return name
	}
	return strings.TrimSpace(p.Name)
}

// ShrinkageGroup mirrors entries of /remote/info/shrinkage-groups and
// /api/statistics/storage-saved: per-library original vs final sizes.
type ShrinkageGroup struct {
	Library      string `json:"Library"`
	OriginalSize int64  `json:"OriginalSize"`
	FinalSize    int64  `json:"FinalSize"`
}

// SavedBytes returns the bytes saved for this group. Groups that grew
// (final larger than original) contribute zero, not a negative value.
func (g ShrinkageGroup) SavedBytes() int64 {
	if g.OriginalSize > g.FinalSize {
		return g.OriginalSize - g.FinalSize
	}
	return 0
}

// LibraryFileStatus mirrors /api/library-file/status: counts of files per
// processing state. Zero counts are meaningful and kept as zero.
type LibraryFileStatus struct {
	Unprocessed   int `json:"Unprocessed"`
	Processed     int `json:"Processed"`
	Processing    int `json:"Processing"`
	Failed        int `json:"Failed"`
	OnHold        int `json:"OnHold"`
	OutOfSchedule int `json:"OutOfSchedule"`
	Disabled      int `json:"Disabled"`
}

// QueueSize is everything waiting or in flight.
func (s LibraryFileStatus) QueueSize() int {
	return s.Unprocessed + s.Processing
}

// SystemInfo mirrors /api/system/info. Not every server version serves
// this endpoint; see the client's capability cache.
type SystemInfo struct {
	CPUUsage          float64 `json:"CpuUsage"`
	MemoryUsage       float64 `json:"MemoryUsage"`
	MemoryUsed        int64   `json:"MemoryUsed"`
	MemoryTotal       int64   `json:"MemoryTotal"`
	TempDirectorySize int64   `json:"TempDirectorySize"`
	LogDirectorySize  int64   `json:"LogDirectorySize"`
	IsPaused          bool    `json:"IsPaused"`
}

// SettingsStatus mirrors /api/settings/fileflows-status.
type SettingsStatus struct {
	IsPaused bool `json:"IsPaused"`
}

// Node mirrors /api/node entries.
type Node struct {
	UID             string `json:"Uid"`
	Name            string `json:"Name"`
	Enabled         bool   `json:"Enabled"`
	FlowRunners     int    `json:"FlowRunners"`
	Priority        int    `json:"Priority"`
	OperatingSystem string `json:"OperatingSystem"`
	Architecture    string `json:"Architecture"`
	Version         string `json:"Version"`
	Address         string `json:"Address"`
}

// Library mirrors /api/library entries.
type Library struct {
	UID      string `json:"Uid"`
	Name     string `json:"Name"`
	Enabled  bool   `json:"Enabled"`
	Path     string `json:"Path"`
	Priority int    `json:"Priority"`
}

// Flow mirrors /api/flow entries.
type Flow struct {
	UID     string `json:"Uid"`
	Name    string `json:"Name"`
	Enabled bool   `json:"Enabled"`
	Default bool   `json:"Default"`
}

// Plugin mirrors /api/plugin entries.
type Plugin struct {
	UID     string `json:"Uid"`
	Name    string `json:"Name"`
	Enabled bool   `json:"Enabled"`
	Version string `json:"Version"`
}

// Task mirrors /api/task entries.
type Task struct {
	UID     string `json:"Uid"`
	Name    string `json:"Name"`
	Enabled bool   `json:"Enabled"`
	LastRun string `json:"LastRun"`
}

// LibraryFileRef is the nested file reference a Worker carries.
type LibraryFileRef struct {
	UID  string `json:"Uid"`
	Name string `json:"Name"`
}

// Worker mirrors /api/worker entries: one running flow executor.
type Worker struct {
	UID                string         `json:"Uid"`
	NodeName           string         `json:"NodeName"`
	CurrentFile        string         `json:"CurrentFile"`
	LibraryFile        LibraryFileRef `json:"LibraryFile"`
	RelativeFile       string         `json:"RelativeFile"`
	CurrentPart        int            `json:"CurrentPart"`
	TotalParts         int            `json:"TotalParts"`
	CurrentPartPercent float64        `json:"CurrentPartPercent"`
}

// FileName returns the best available name for the file being processed.
func (w Worker) FileName() string {
	if name := strings.TrimSpace(w.CurrentFile); name != "" {
		return name
	}
	if name := strings.TrimSpace(w.RelativeFile); name != "" {
		return name
	}
	return strings.TrimSpace(w.LibraryFile.Name)
}

// PartProgress returns progress through the flow as "part of total",
// falling back to zero values when the server omits the counters.
func (w Worker) PartProgress() (current, total int) {
	return w.CurrentPart, w.TotalParts
}

// LibraryFile mirrors /api/library-file/upcoming and
// /api/library-file/recently-finished entries.
type LibraryFile struct {
	UID          string `json:"Uid"`
	Name         string `json:"Name"`
	RelativePath string `json:"RelativePath"`
	LibraryName  string `json:"LibraryName"`
	OriginalSize int64  `json:"OriginalSize"`
	FinalSize    int64  `json:"FinalSize"`
	When         string `json:"When"`
}

// DisplayName prefers the library-relative path over the full name.
func (f LibraryFile) DisplayName() string {
	if name := strings.TrimSpace(f.RelativePath); name != "" {
		return name
	}
	return strings.TrimSpace(f.Name)
}

// NvidiaInfo mirrors /api/nvidia/smi. Only present on servers with a GPU.
type NvidiaInfo struct {
	GPUUsage     float64 `json:"GpuUsage"`
	MemoryUsage  float64 `json:"MemoryUsage"`
	EncoderUsage float64 `json:"EncoderUsage"`
	DecoderUsage float64 `json:"DecoderUsage"`
	Temperature  float64 `json:"Temperature"`
}

// UpdateInfo mirrors /remote/info/update-available.
type UpdateInfo struct {
	UpdateAvailable bool `json:"UpdateAvailable"`
}

// VersionInfo is the object form some endpoints use for version replies.
// Other server versions return the bare version string instead.
type VersionInfo struct {
	Version string `json:"Version"`
}
