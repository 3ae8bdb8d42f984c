package kerneltest

import (
	"encoding/hex"
	"fmt"

	"bundletest/pkg/kernel"

	"github.com/fxamacker/cbor/v2"
	"github.com/zeebo/blake3"
)

// hashDomainKey separates configuration hashes from any other BLAKE3 use.
// Changing it moves every kernel to a new cache directory.
var hashDomainKey = [32]byte{
	'b', 'u', 'n', 'd', 'l', 'e', 't', 'e', 's', 't', '.', 'k', 'e', 'r', 'n', 'e',
	'l', '.', 'c', 'o', 'n', 'f', 'i', 'g', 0, 0, 0, 0, 0, 0, 0, 0,
}

// hashEncMode encodes with Core Deterministic Encoding: sorted map keys and
// smallest integer encoding, so equal trees give identical bytes.
var hashEncMode cbor.EncMode

func init() {
	var err error
	hashEncMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("kerneltest: CBOR encoder initialization failed: " + err.Error())
	}
}

// Hash returns a hex digest identifying the configuration. Equal
// configurations hash equally; changing any field, including the module type
// list or any value inside a module configuration tree, changes the hash.
// Modules contribute their type name, not their identity.
func (c Configuration) Hash() string {
	moduleNames := make([]string, 0, len(c.modules))
	for _, m := range c.modules {
		moduleNames = append(moduleNames, kernel.ModuleTypeName(m))
	}

	exposed := c.exposedServiceIDs
	if exposed == nil {
		exposed = []string{}
	}

	tuple := []any{
		c.environment,
		c.debug,
		moduleNames,
		c.moduleConfigurations,
		c.tempDir,
		c.namespace,
		exposed,
	}

	data, err := hashEncMode.Marshal(tuple)
	if err != nil {
		// Trees holding values CBOR cannot encode (funcs, channels) fall
		// back to fmt, which also prints maps with sorted keys.
		data = []byte(fmt.Sprintf("%#v", tuple))
	}

	hasher, err := blake3.NewKeyed(hashDomainKey[:])
	if err != nil {
		panic("kerneltest: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	_, _ = hasher.Write(data)
	return hex.EncodeToString(hasher.Sum(nil))
}
