package surveygrid

import (
	"compress/bzip2"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"sync"
)

// MarkerProvider supplies township records by composite key. Providers must
// be safe for concurrent use. Absence is reported through the boolean, not
// the error.
type MarkerProvider interface {
	Township(key uint16) (*TownshipRecord, bool, error)
}

// TownshipEnumerator is implemented by providers that can walk every record
// they hold. The spatial index needs it; per-key providers without it simply
// cannot back an index.
type TownshipEnumerator interface {
	EnumerateTownships(fn func(key uint16, rec *TownshipRecord) error) error
}

// embeddedProvider serves the bundled dataset. Decoding is deferred until
// the first lookup and done once; a load failure is retained and returned
// to every subsequent caller.
type embeddedProvider struct {
	once  sync.Once
	table map[uint16]*TownshipRecord
	err   error
}

func (p *embeddedProvider) load() {
	p.once.Do(func() {
		p.table, p.err = loadEmbeddedMarkers()
	})
}

func (p *embeddedProvider) Township(key uint16) (*TownshipRecord, bool, error) {
	p.load()
	if p.err != nil {
		return nil, false, p.err
	}
	rec, ok := p.table[key]
	return rec, ok, nil
}

func (p *embeddedProvider) EnumerateTownships(fn func(key uint16, rec *TownshipRecord) error) error {
	p.load()
	if p.err != nil {
		return p.err
	}
	for key, rec := range p.table {
		if err := fn(key, rec); err != nil {
			return err
		}
	}
	return nil
}

// MarkerStore answers marker queries for grid references. The zero store is
// not usable; construct one with NewMarkerStore or use DefaultStore.
type MarkerStore struct {
	provider MarkerProvider
}

// NewMarkerStore returns a store backed by the bundled dataset.
func NewMarkerStore() *MarkerStore {
	return &MarkerStore{provider: &embeddedProvider{}}
}

// NewMarkerStoreWithProvider returns a store backed by a custom provider,
// such as a FileProvider or a CachedProvider wrapping one.
func NewMarkerStoreWithProvider(p MarkerProvider) *MarkerStore {
	return &MarkerStore{provider: p}
}

var (
	defaultStore     *MarkerStore
	defaultStoreOnce sync.Once
)

// DefaultStore returns the shared store over the bundled dataset. The first
// lookup through it pays the decode cost; later lookups hit the decoded
// table directly.
func DefaultStore() *MarkerStore {
	defaultStoreOnce.Do(func() {
		defaultStore = NewMarkerStore()
	})
	return defaultStore
}

// TownshipMarkers returns the record for a township, or ok=false when the
// township is outside the surveyed coverage. Field values no dataset key can
// encode name townships outside any possible coverage, so they also report
// absence rather than an error.
func (s *MarkerStore) TownshipMarkers(township, rangeNum, meridian uint8) (*TownshipRecord, bool, error) {
	key, err := encodeTownshipKey(meridian, rangeNum, township)
	if err != nil {
		return nil, false, nil
	}
	return s.provider.Township(key)
}

// BoundaryMarkers returns the surveyed corner markers for one section.
// ok=false means the township has no record; a present township with an
// unsurveyed section returns ok=true and zero corners.
func (s *MarkerStore) BoundaryMarkers(section, township, rangeNum, meridian uint8) (SectionCorners, bool, error) {
	if section < 1 || section > maxSection {
		return SectionCorners{}, false, fmt.Errorf("section %d: %w", section, ErrValueOutOfRange)
	}
	rec, ok, err := s.TownshipMarkers(township, rangeNum, meridian)
	if err != nil || !ok {
		return SectionCorners{}, false, err
	}
	return rec[section-1], true, nil
}

// FileProvider reads township records from a bzip2-compressed marker file
// on disk. Every lookup scans the file from the start; wrap it in a
// CachedProvider when more than a handful of lookups are expected.
type FileProvider struct {
	path string
}

// NewFileProvider returns a provider over the marker file at path.
func NewFileProvider(path string) *FileProvider {
	return &FileProvider{path: path}
}

func (p *FileProvider) Township(key uint16) (*TownshipRecord, bool, error) {
	var found *TownshipRecord
	err := p.scan(func(k uint16, rec *TownshipRecord) error {
		if k == key {
			found = rec
			return errStopScan
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return found, found != nil, nil
}

func (p *FileProvider) EnumerateTownships(fn func(key uint16, rec *TownshipRecord) error) error {
	return p.scan(fn)
}

var errStopScan = fmt.Errorf("stop scan")

func (p *FileProvider) scan(fn func(key uint16, rec *TownshipRecord) error) error {
	f, err := os.Open(p.path)
	if err != nil {
		return fmt.Errorf("open marker file: %w", err)
	}
	defer f.Close()

	r := bzip2.NewReader(f)
	buf := make([]byte, markerRecordSize)
	for i := 0; ; i++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("%s: record %d truncated: %w", p.path, i, ErrDatasetIntegrity)
		}
		key := binary.LittleEndian.Uint16(buf)
		rec := new(TownshipRecord)
		off := 2
		for s := 0; s < sectionsPerTownship; s++ {
			for c := CornerSouthEast; c <= CornerNorthEast; c++ {
				lat := math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
				lng := math.Float32frombits(binary.LittleEndian.Uint32(buf[off+4:]))
				off += 8
				rec[s].set(c, LatLongCoordinate{Latitude: lat, Longitude: lng})
			}
		}
		if err := fn(key, rec); err != nil {
			if err == errStopScan {
				return nil
			}
			return err
		}
	}
}

// CachedProvider memoizes lookups from a slower provider. Both hits and
// confirmed absences are cached, so a repeated miss never touches the
// source twice.
type CachedProvider struct {
	src MarkerProvider

	mu      sync.RWMutex
	records map[uint16]cachedTownship
}

type cachedTownship struct {
	rec *TownshipRecord
	ok  bool
}

// NewCachedProvider wraps src with an unbounded in-memory cache. The full
// dataset is under a megabyte decoded, so no eviction is needed.
func NewCachedProvider(src MarkerProvider) *CachedProvider {
	return &CachedProvider{src: src, records: make(map[uint16]cachedTownship)}
}

func (p *CachedProvider) Township(key uint16) (*TownshipRecord, bool, error) {
	p.mu.RLock()
	ct, hit := p.records[key]
	p.mu.RUnlock()
	if hit {
		return ct.rec, ct.ok, nil
	}

	rec, ok, err := p.src.Township(key)
	if err != nil {
		return nil, false, err
	}
	p.mu.Lock()
	// Recheck: another goroutine may have filled the entry during the
	// fetch. The first write wins so every caller sees the same record.
	if ct, hit := p.records[key]; hit {
		p.mu.Unlock()
		return ct.rec, ct.ok, nil
	}
	p.records[key] = cachedTownship{rec: rec, ok: ok}
	p.mu.Unlock()
	return rec, ok, nil
}

func (p *CachedProvider) EnumerateTownships(fn func(key uint16, rec *TownshipRecord) error) error {
	e, ok := p.src.(TownshipEnumerator)
	if !ok {
		return fmt.Errorf("provider %T cannot enumerate townships", p.src)
	}
	return e.EnumerateTownships(fn)
}
