package variant

import (
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"os"
)

// representationVersion is the version tag of the fault/fix weighting
// binary format (spec §4.6 save_binary/load_binary). There is no
// migration path: a mismatched version fails loudly, the same
// convention internal/instrument's artifacts use.
const representationVersion uint32 = 2

const binaryMagic uint32 = 0x47505256 // "GPRV"

type binaryFile struct {
	Fault []WeightedSid
	Fix   []WeightedSid
}

// SaveBinary persists v's fault/fix weightings to path.
func (v *Variant) SaveBinary(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("variant: creating %s: %w", path, err)
	}
	defer f.Close()

	if err := binary.Write(f, binary.BigEndian, binaryMagic); err != nil {
		return err
	}
	if err := binary.Write(f, binary.BigEndian, representationVersion); err != nil {
		return err
	}
	payload := binaryFile{Fault: v.FaultWeights, Fix: v.FixWeights}
	if err := gob.NewEncoder(f).Encode(payload); err != nil {
		return fmt.Errorf("variant: encoding %s: %w", path, err)
	}
	return nil
}

// LoadBinary loads fault/fix weightings from path into v, replacing
// whatever ComputeLocalization previously produced.
func (v *Variant) LoadBinary(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("variant: opening %s: %w", path, err)
	}
	defer f.Close()

	var magic, version uint32
	if err := binary.Read(f, binary.BigEndian, &magic); err != nil {
		return fmt.Errorf("variant: reading %s header: %w", path, err)
	}
	if magic != binaryMagic {
		return fmt.Errorf("variant: %s has bad magic %#x, want %#x", path, magic, binaryMagic)
	}
	if err := binary.Read(f, binary.BigEndian, &version); err != nil {
		return fmt.Errorf("variant: reading %s version: %w", path, err)
	}
	if version != representationVersion {
		return fmt.Errorf("variant: %s has version %d, want %d", path, version, representationVersion)
	}

	var payload binaryFile
	if err := gob.NewDecoder(f).Decode(&payload); err != nil {
		return fmt.Errorf("variant: decoding %s: %w", path, err)
	}
	v.FaultWeights = payload.Fault
	v.FixWeights = payload.Fix
	return nil
}
