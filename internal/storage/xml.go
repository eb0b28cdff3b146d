package storage

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/boko-runner/internal/profile"
)

// Expected element counts of a sound legacy save file.
const (
	xmlConfigItems = 6
	xmlStatItems   = 7
	xmlShopItems   = 6
	xmlScoreItems  = profile.MaxScores // per difficulty
)

type xmlDoc struct {
	XMLName    xml.Name    `xml:"runner"`
	Config     *xmlEntries `xml:"config"`
	Stats      *xmlStats   `xml:"stats"`
	Shop       *xmlShop    `xml:"shop"`
	ScoresEasy *xmlScores  `xml:"scoresEasy"`
	ScoresHard *xmlScores  `xml:"scoresHard"`
}

type xmlEntry struct {
	Type  string `xml:"type,attr"`
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

type xmlEntries struct {
	Items []xmlEntry `xml:"configItem"`
}

type xmlStats struct {
	Items []xmlEntry `xml:"statItem"`
}

type xmlShopItem struct {
	Type   string `xml:"type,attr"`
	ID     string `xml:"id,attr"`
	Price  string `xml:"price,attr"`
	Bought string `xml:"bought,attr"`
}

type xmlShop struct {
	Items []xmlShopItem `xml:"shopItem"`
}

type xmlScore struct {
	Type  string `xml:"type,attr"`
	Value string `xml:"value,attr"`
}

type xmlScores struct {
	Items []xmlScore `xml:"scoreItem"`
}

// XMLFile stores the profile in the legacy <runner> XML document.
// It keeps no game history.
type XMLFile struct {
	path   string
	logger *log.Logger
}

// NewXMLFile creates a store backed by the XML file at path.
func NewXMLFile(path string, logger *log.Logger) (*XMLFile, error) {
	if path == "" {
		return nil, errors.New("storage: xml path is required")
	}
	expanded, err := expandHome(path)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &XMLFile{path: expanded, logger: logger}, nil
}

// Path returns the file location.
func (f *XMLFile) Path() string {
	return f.path
}

// Load reads the file. A missing file yields the default profile; a
// corrupt one yields the default profile and ErrCorruptSave.
func (f *XMLFile) Load(_ context.Context) (profile.Data, error) {
	file, err := os.Open(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return profile.DefaultData(), nil
	}
	if err != nil {
		return profile.DefaultData(), fmt.Errorf("storage: cannot open %s: %w", f.path, err)
	}
	defer file.Close()

	data, err := DecodeXML(file, f.logger)
	if err != nil {
		f.logger.Warn("save file is corrupt, using defaults", "path", f.path, "err", err)
	}
	return data, err
}

// Save writes the file through a temporary file so a crash never leaves a
// truncated document behind.
func (f *XMLFile) Save(_ context.Context, d profile.Data) error {
	var buf bytes.Buffer
	if err := EncodeXML(&buf, d); err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".runner-*.xml")
	if err != nil {
		return fmt.Errorf("storage: cannot create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("storage: cannot write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: cannot write %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("storage: cannot replace %s: %w", f.path, err)
	}
	return nil
}

// EncodeXML writes d as a legacy save document. Every leaderboard is
// padded with zero entries up to MaxScores.
func EncodeXML(w io.Writer, d profile.Data) error {
	doc := xmlDoc{
		Config: &xmlEntries{},
		Stats:  &xmlStats{},
		Shop:   &xmlShop{},
	}

	settings := encodeSettings(d.Settings)
	for _, key := range settingKeys {
		doc.Config.Items = append(doc.Config.Items, xmlEntry{
			Type:  settingType[key],
			Name:  key,
			Value: settings[key],
		})
	}

	for _, key := range profile.StatKeys {
		doc.Stats.Items = append(doc.Stats.Items, xmlEntry{
			Type:  "unsigned int",
			Name:  key,
			Value: strconv.Itoa(d.Stats.Get(key)),
		})
	}

	owned := make(map[profile.ItemID]bool, len(d.Owned))
	for _, id := range d.Owned {
		owned[id] = true
	}
	for _, it := range profile.Catalogue {
		doc.Shop.Items = append(doc.Shop.Items, xmlShopItem{
			Type:   "boolean",
			ID:     string(it.ID),
			Price:  strconv.Itoa(it.Price),
			Bought: strconv.FormatBool(owned[it.ID]),
		})
	}

	doc.ScoresEasy = encodeScores(d.Scores[profile.Easy])
	doc.ScoresHard = encodeScores(d.Scores[profile.Hard])

	if _, err := io.WriteString(w, `<?xml version="1.0"?>`+"\n"); err != nil {
		return fmt.Errorf("storage: cannot write xml: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "\t")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("storage: cannot encode xml: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("storage: cannot write xml: %w", err)
	}
	return nil
}

func encodeScores(scores []int) *xmlScores {
	lb := profile.NewLeaderboard(scores...)
	out := &xmlScores{}
	for _, sc := range lb.Scores() {
		out.Items = append(out.Items, xmlScore{Type: "unsigned int", Value: strconv.Itoa(sc)})
	}
	for len(out.Items) < xmlScoreItems {
		out.Items = append(out.Items, xmlScore{Type: "unsigned int", Value: "0"})
	}
	return out
}

// DecodeXML reads a legacy save document. A document that is malformed or
// misses elements yields the default profile and ErrCorruptSave. Single
// invalid values fall back to their default and are logged.
func DecodeXML(r io.Reader, logger *log.Logger) (profile.Data, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	var doc xmlDoc
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return profile.DefaultData(), fmt.Errorf("%w: %v", ErrCorruptSave, err)
	}
	if err := doc.checkIntegrity(); err != nil {
		return profile.DefaultData(), fmt.Errorf("%w: %v", ErrCorruptSave, err)
	}

	data := profile.DefaultData()

	kv := make(map[string]string, len(doc.Config.Items))
	for _, it := range doc.Config.Items {
		kv[it.Name] = it.Value
	}
	var bad []string
	data.Settings, bad = decodeSettings(kv)
	for _, key := range bad {
		logger.Warn("discarding invalid setting", "key", key, "value", kv[key])
	}

	for _, it := range doc.Stats.Items {
		n, err := parseCount(it.Value)
		if err != nil {
			logger.Warn("discarding invalid stat", "key", it.Name, "value", it.Value)
			continue
		}
		data.Stats.Set(it.Name, n)
	}

	bought := make(map[string]bool, len(doc.Shop.Items))
	for _, it := range doc.Shop.Items {
		if it.Bought == "true" {
			bought[it.ID] = true
		}
	}
	for _, it := range profile.Catalogue {
		if bought[string(it.ID)] {
			data.Owned = append(data.Owned, it.ID)
		}
	}

	data.Scores[profile.Easy] = decodeScores(doc.ScoresEasy, logger)
	data.Scores[profile.Hard] = decodeScores(doc.ScoresHard, logger)
	return data, nil
}

func decodeScores(s *xmlScores, logger *log.Logger) []int {
	lb := profile.NewLeaderboard()
	for _, it := range s.Items {
		// Zero marks an empty slot
		if it.Value == "0" {
			continue
		}
		n, err := parseCount(it.Value)
		if err != nil {
			logger.Warn("discarding invalid score", "value", it.Value)
			continue
		}
		lb.Add(n)
	}
	return lb.Scores()
}

func (d *xmlDoc) checkIntegrity() error {
	switch {
	case d.Config == nil:
		return errors.New("missing <config>")
	case d.Stats == nil:
		return errors.New("missing <stats>")
	case d.Shop == nil:
		return errors.New("missing <shop>")
	case d.ScoresEasy == nil:
		return errors.New("missing <scoresEasy>")
	case d.ScoresHard == nil:
		return errors.New("missing <scoresHard>")
	}

	counts := []struct {
		name      string
		got, want int
	}{
		{"configItem", len(d.Config.Items), xmlConfigItems},
		{"statItem", len(d.Stats.Items), xmlStatItems},
		{"shopItem", len(d.Shop.Items), xmlShopItems},
		{"scoreItem", len(d.ScoresEasy.Items) + len(d.ScoresHard.Items), 2 * xmlScoreItems},
	}
	for _, c := range counts {
		if c.got != c.want {
			return fmt.Errorf("expected %d <%s> elements, found %d", c.want, c.name, c.got)
		}
	}
	return nil
}
