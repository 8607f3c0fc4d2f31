package features

import (
	"encoding/json"
	"fmt"
)

// The JSON forms below are what the feature cache stores. Entries are
// written in key order so equal sets encode to equal bytes.

type weightedEntry struct {
	Key   Key     `json:"k"`
	Value float64 `json:"v"`
}

type weightedJSON struct {
	Extractor string          `json:"extractor"`
	Total     int             `json:"total"`
	Entries   []weightedEntry `json:"entries"`
}

func encodeWeighted(extractor string, total int, entries map[Key]float64) ([]byte, error) {
	out := weightedJSON{Extractor: extractor, Total: total, Entries: make([]weightedEntry, 0, len(entries))}
	for _, k := range sortedKeys(entries) {
		out.Entries = append(out.Entries, weightedEntry{Key: k, Value: entries[k]})
	}
	return json.Marshal(out)
}

func decodeWeighted(data []byte) (weightedJSON, map[Key]float64, error) {
	var in weightedJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return in, nil, fmt.Errorf("decoding feature set: %w", err)
	}
	entries := make(map[Key]float64, len(in.Entries))
	for _, e := range in.Entries {
		entries[e.Key] = e.Value
	}
	return in, entries, nil
}

func (v *Vocabulary) MarshalJSON() ([]byte, error) {
	entries := make(map[Key]float64, len(v.entries))
	for k := range v.entries {
		entries[k] = 1
	}
	return encodeWeighted(v.extractor, len(v.entries), entries)
}

func (v *Vocabulary) UnmarshalJSON(data []byte) error {
	in, entries, err := decodeWeighted(data)
	if err != nil {
		return err
	}
	v.extractor = in.Extractor
	v.entries = make(map[Key]struct{}, len(entries))
	for k := range entries {
		v.entries[k] = struct{}{}
	}
	return nil
}

func (f *Frequencies) MarshalJSON() ([]byte, error) {
	return encodeWeighted(f.extractor, f.total, f.entries)
}

func (f *Frequencies) UnmarshalJSON(data []byte) error {
	in, entries, err := decodeWeighted(data)
	if err != nil {
		return err
	}
	f.extractor, f.total, f.entries = in.Extractor, in.Total, entries
	return nil
}

func (p *PairwiseAssociation) MarshalJSON() ([]byte, error) {
	return encodeWeighted(p.extractor, p.total, p.entries)
}

func (p *PairwiseAssociation) UnmarshalJSON(data []byte) error {
	in, entries, err := decodeWeighted(data)
	if err != nil {
		return err
	}
	p.extractor, p.total, p.entries = in.Extractor, in.Total, entries
	return nil
}

type seriesEntry struct {
	Key       Key   `json:"k"`
	Positions []int `json:"p"`
}

type seriesJSON struct {
	Extractor string        `json:"extractor"`
	Total     int           `json:"total"`
	Entries   []seriesEntry `json:"entries"`
}

func (s *Series) MarshalJSON() ([]byte, error) {
	out := seriesJSON{Extractor: s.extractor, Total: s.total, Entries: make([]seriesEntry, 0, len(s.entries))}
	for _, k := range s.Keys() {
		out.Entries = append(out.Entries, seriesEntry{Key: k, Positions: s.entries[k]})
	}
	return json.Marshal(out)
}

func (s *Series) UnmarshalJSON(data []byte) error {
	var in seriesJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("decoding series: %w", err)
	}
	s.extractor, s.total = in.Extractor, in.Total
	s.entries = make(map[Key][]int, len(in.Entries))
	for _, e := range in.Entries {
		s.entries[e.Key] = e.Positions
	}
	return nil
}

type entropyEntry struct {
	Key         Key     `json:"k"`
	SumFreqs    float64 `json:"f"`
	SumFreqsLog float64 `json:"l"`
}

type entropiesJSON struct {
	Extractor string         `json:"extractor"`
	Total     int            `json:"total"`
	Entries   []entropyEntry `json:"entries"`
}

func (e *Entropies) MarshalJSON() ([]byte, error) {
	out := entropiesJSON{Extractor: e.extractor, Total: e.total, Entries: make([]entropyEntry, 0, len(e.sumFreqs))}
	for _, k := range e.Keys() {
		out.Entries = append(out.Entries, entropyEntry{Key: k, SumFreqs: e.sumFreqs[k], SumFreqsLog: e.sumFreqsLog[k]})
	}
	return json.Marshal(out)
}

func (e *Entropies) UnmarshalJSON(data []byte) error {
	var in entropiesJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("decoding entropies: %w", err)
	}
	e.extractor, e.total = in.Extractor, in.Total
	e.sumFreqs = make(map[Key]float64, len(in.Entries))
	e.sumFreqsLog = make(map[Key]float64, len(in.Entries))
	for _, entry := range in.Entries {
		e.sumFreqs[entry.Key] = entry.SumFreqs
		e.sumFreqsLog[entry.Key] = entry.SumFreqsLog
	}
	return nil
}
