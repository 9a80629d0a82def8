package types

// Transcript is the speech-to-text result for a source video. It is produced
// once per job and read-only downstream.
type Transcript struct {
	Text     string    `json:"text"`
	Duration float64   `json:"duration"`
	Language string    `json:"language"`
	Segments []Segment `json:"segments,omitempty"`
}

// Segment is a time-coded transcript span.
type Segment struct {
	Id    int     `json:"id"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Moment is a scored, time-ranged candidate segment of the source video.
// EndTime > StartTime always holds; records violating it are dropped at
// parse time, never clamped.
type Moment struct {
	StartTime   float64 `json:"start_time"`
	EndTime     float64 `json:"end_time"`
	Duration    float64 `json:"duration"`
	Description string  `json:"description"`
	Score       int     `json:"score"`
}

// Clip is a materialized cut of one moment. Sequence is the moment's 1-based
// position in the score-sorted list, assigned before extraction is attempted
// so numbering stays stable when earlier cuts fail.
type Clip struct {
	Sequence    int     `json:"sequence"`
	FilePath    string  `json:"file_path"`
	StartTime   float64 `json:"start_time"`
	EndTime     float64 `json:"end_time"`
	Duration    float64 `json:"duration"`
	Description string  `json:"description"`
	Score       int     `json:"score"`
}

// Caption is publish-ready text plus its hashtag set.
type Caption struct {
	Caption        string   `json:"caption"`
	Hashtags       []string `json:"hashtags"`
	CharacterCount int      `json:"character_count"`
}

// ClipLocator is the public address of a published clip.
type ClipLocator struct {
	Sequence    int     `json:"sequence"`
	StartTime   float64 `json:"start_time"`
	EndTime     float64 `json:"end_time"`
	Description string  `json:"description"`
	Url         string  `json:"url"`
}

// ClipSummary is the clip metadata persisted on the job record; file paths
// stay out of the API surface.
type ClipSummary struct {
	Sequence    int     `json:"sequence"`
	StartTime   float64 `json:"start_time"`
	EndTime     float64 `json:"end_time"`
	Duration    float64 `json:"duration"`
	Description string  `json:"description"`
}

// JobResults aggregates everything a completed job produced.
type JobResults struct {
	Transcript  string        `json:"transcript"`
	ViralHooks  []string      `json:"viral_hooks"`
	Captions    []Caption     `json:"captions"`
	Clips       []ClipSummary `json:"clips"`
	ClipUrls    []ClipLocator `json:"clip_urls,omitempty"`
	ArchivePath string        `json:"archive_path"`
}
