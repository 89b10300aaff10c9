package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sosodev/duration"
)

// Status is the full snapshot returned by one poll of the status
// endpoint. It replaces the prior snapshot wholesale; there is no
// incremental merge.
type Status struct {
	Results []StatusResult `json:"results"`
	Total   int            `json:"total"`
}

// Progress is the counter/duration record shared by every level of the
// job hierarchy (result, batch, queue, task). Counters are mandatory
// and non-negative; timestamps and durations are optional, where
// absent means unknown.
type Progress struct {
	Todo      int
	Doing     int
	Succeeded int
	Failed    int
	Aborted   int
	Aborting  int
	Cancelled int
	Total     int
	Active    int
	Finished  int

	// ISO8601 strings, parsed lazily only for display.
	MinTS string
	MaxTS string

	RemainingTime *ISODuration
	Took          *ISODuration
}

type progressWire struct {
	Todo      *int `json:"todo"`
	Doing     *int `json:"doing"`
	Succeeded *int `json:"succeeded"`
	Failed    *int `json:"failed"`
	Aborted   *int `json:"aborted"`
	Aborting  *int `json:"aborting"`
	Cancelled *int `json:"cancelled"`
	Total     *int `json:"total"`
	Active    *int `json:"active"`
	Finished  *int `json:"finished"`

	MinTS string `json:"min_ts"`
	MaxTS string `json:"max_ts"`

	RemainingTime *ISODuration `json:"remaining_time"`
	Took          *ISODuration `json:"took"`
}

// UnmarshalJSON enforces that every counter is present and
// non-negative. A row with a malformed counter fails the whole parse;
// partial results are never returned.
func (p *Progress) UnmarshalJSON(data []byte) error {
	var w progressWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	counters := []struct {
		name string
		src  *int
		dst  *int
	}{
		{"todo", w.Todo, &p.Todo},
		{"doing", w.Doing, &p.Doing},
		{"succeeded", w.Succeeded, &p.Succeeded},
		{"failed", w.Failed, &p.Failed},
		{"aborted", w.Aborted, &p.Aborted},
		{"aborting", w.Aborting, &p.Aborting},
		{"cancelled", w.Cancelled, &p.Cancelled},
		{"total", w.Total, &p.Total},
		{"active", w.Active, &p.Active},
		{"finished", w.Finished, &p.Finished},
	}
	for _, c := range counters {
		if c.src == nil {
			return fmt.Errorf("missing counter %q", c.name)
		}
		if *c.src < 0 {
			return fmt.Errorf("counter %q is negative: %d", c.name, *c.src)
		}
		*c.dst = *c.src
	}
	p.MinTS = w.MinTS
	p.MaxTS = w.MaxTS
	p.RemainingTime = w.RemainingTime
	p.Took = w.Took
	return nil
}

// StatusResult is one row per job/collection being processed. The
// collection is absent for rows without an associated dataset (raw
// export jobs).
type StatusResult struct {
	Progress

	Name       string
	Collection *Collection
	Batches    BatchList
}

// Embedding Progress hoists its UnmarshalJSON onto the outer type, so
// each hierarchy level decodes its own fields explicitly and delegates
// the shared record in a second pass over the same bytes.
func (r *StatusResult) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &r.Progress); err != nil {
		return err
	}
	var w struct {
		Name       string      `json:"name"`
		Collection *Collection `json:"collection"`
		Batches    BatchList   `json:"batches"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	r.Name = w.Name
	r.Collection = w.Collection
	r.Batches = w.Batches
	return nil
}

// Batch nests queues; Queue nests tasks. Same progress shape at every
// level.
type Batch struct {
	Progress

	Name   string
	Queues []Queue
}

func (b *Batch) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &b.Progress); err != nil {
		return err
	}
	var w struct {
		Name   string  `json:"name"`
		Queues []Queue `json:"queues"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	b.Name = w.Name
	b.Queues = w.Queues
	return nil
}

type Queue struct {
	Progress

	Name  string
	Tasks []Task
}

func (q *Queue) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &q.Progress); err != nil {
		return err
	}
	var w struct {
		Name  string `json:"name"`
		Tasks []Task `json:"tasks"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	q.Name = w.Name
	q.Tasks = w.Tasks
	return nil
}

type Task struct {
	Progress

	Name string
}

func (t *Task) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &t.Progress); err != nil {
		return err
	}
	var w struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	t.Name = w.Name
	return nil
}

// BatchList tolerates the batches field arriving either as a single
// object or as an array of objects, sniffing the shape off the first
// token. Absent or null decodes to an empty list.
type BatchList []Batch

func (b *BatchList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*b = nil
		return nil
	}
	if trimmed[0] == '[' {
		var many []Batch
		if err := json.Unmarshal(trimmed, &many); err != nil {
			return err
		}
		*b = many
		return nil
	}
	var one Batch
	if err := json.Unmarshal(trimmed, &one); err != nil {
		return err
	}
	*b = BatchList{one}
	return nil
}

// Links is the URL bundle attached to a collection.
type Links struct {
	Self       string `json:"self"`
	XrefExport string `json:"xref_export"`
	Reconcile  string `json:"reconcile"`
	UI         string `json:"ui"`
}

// Collection describes a job's target dataset. Purely descriptive;
// never mutated here.
type Collection struct {
	ID            string `json:"id"`
	CollectionID  string `json:"collection_id"`
	ForeignID     string `json:"foreign_id"`
	Label         string `json:"label"`
	Category      string `json:"category"`
	Frequency     string `json:"frequency"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
	DataUpdatedAt string `json:"data_updated_at"`
	Casefile      bool   `json:"casefile"`
	Secret        bool   `json:"secret"`
	Xref          *bool  `json:"xref"`
	Restricted    *bool  `json:"restricted"`
	Writeable     bool   `json:"writeable"`
	Shallow       bool   `json:"shallow"`
	Links         Links  `json:"links"`
}

// Metadata is the server self-description. Server versions vary, so
// everything inside app is optional.
type Metadata struct {
	Status      string      `json:"status"`
	Maintenance bool        `json:"maintenance"`
	App         MetadataApp `json:"app"`
}

type MetadataApp struct {
	Title      string `json:"title"`
	Version    string `json:"version"`
	FtmVersion string `json:"ftm_version"`
}

// ISODuration is a duration supplied on the wire as an ISO-8601
// duration string ("PT1M17S" -> 77s). Sub-second precision is
// preserved. A nil *ISODuration means unknown, never zero.
type ISODuration struct {
	time.Duration
}

func (d *ISODuration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("duration: %w", err)
	}
	parsed, err := duration.Parse(s)
	if err != nil {
		return fmt.Errorf("duration %q: %w", s, err)
	}
	d.Duration = parsed.ToTimeDuration()
	return nil
}

// ParseStatus decodes a status snapshot, failing on any structural
// mismatch in mandatory fields. Unknown extra fields are ignored.
func ParseStatus(b []byte) (Status, error) {
	var st Status
	if err := json.Unmarshal(b, &st); err != nil {
		return Status{}, fmt.Errorf("decode status: %w", err)
	}
	return st, nil
}

// ParseMetadata decodes the metadata payload.
func ParseMetadata(b []byte) (Metadata, error) {
	var meta Metadata
	if err := json.Unmarshal(b, &meta); err != nil {
		return Metadata{}, fmt.Errorf("decode metadata: %w", err)
	}
	return meta, nil
}
