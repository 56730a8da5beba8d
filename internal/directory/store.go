package directory

import (
	"slices"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Store holds the loaded dataset. It is written once by NewStore and never
// mutated afterwards; every accessor returns copies.
type Store struct {
	records     []Record
	fingerprint uint64
}

// NewStore builds a Store from a loaded record sequence.
// Each record's ID is set to its position in the sequence.
func NewStore(records []Record) *Store {
	owned := make([]Record, len(records))
	copy(owned, records)

	d := xxhash.New()
	for i := range owned {
		owned[i].ID = i
		writeRecordHash(d, owned[i])
	}

	return &Store{
		records:     owned,
		fingerprint: d.Sum64(),
	}
}

// EmptyStore returns a Store with no records.
func EmptyStore() *Store {
	return NewStore(nil)
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.records)
}

// All returns a copy of every record in load order.
func (s *Store) All() []Record {
	return slices.Clone(s.records)
}

// Get returns the record with the given ID.
func (s *Store) Get(id int) (Record, bool) {
	if id < 0 || id >= len(s.records) {
		return Record{}, false
	}
	return s.records[id], true
}

// Filter runs the query engine over the stored records.
func (s *Store) Filter(c Criteria, mode MatchMode) []Record {
	return FilterWithMode(s.records, c, mode)
}

// Fingerprint returns a content hash of the dataset, suitable for ETags.
func (s *Store) Fingerprint() string {
	return strconv.FormatUint(s.fingerprint, 16)
}

func writeRecordHash(d *xxhash.Digest, r Record) {
	for _, f := range []string{
		r.Organization, r.Description, r.Address, r.City, r.Zip,
		r.Phone, r.Website, r.Categories, r.Subcategories, r.SearchBlock,
	} {
		_, _ = d.WriteString(f)
		_, _ = d.Write([]byte{0})
	}
}
