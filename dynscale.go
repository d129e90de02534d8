// Package dynscale provides dynamic SCALE (Simple Concatenated Aggregate Little-Endian) decoding
// for substrate style chain data. Unlike codec generated decoders, dynscale resolves the layout of
// every value at runtime from a type registry (a scale-info portable registry or a legacy custom
// type document), which makes it suitable for runtime api results whose types are only known as
// type strings.
//
// Copyright (c) 2025 by pk910. See LICENSE file for details.
package dynscale

import (
	"fmt"

	"github.com/pk910/dynamic-scale/scaletypes"
	"github.com/pk910/dynamic-scale/scaleutils"
)

// DynScale is a dynamic SCALE decoder bound to one type registry.
//
// The instance caches resolved type strings, so it's recommended to reuse the same DynScale
// instance for all decode calls against a registry. The registry is sealed when the instance
// is created and is only read afterwards, DynScale is safe for concurrent use.
//
// Example usage:
//
//	registry, _ := scaletypes.BittensorRegistry()
//	ds := dynscale.NewDynScale(registry)
//
//	value, err := ds.Decode("Vec<SubnetInfo>", data)
type DynScale struct {
	typeCache *scaletypes.TypeCache

	// Verbose enables detailed logging of decode operations through LogCb.
	// Useful for debugging but impacts performance.
	Verbose bool

	// LogCb receives the verbose log lines.
	LogCb func(format string, args ...any)
}

// NewDynScale creates a new DynScale decoder for the given registry.
//
// A nil registry is replaced by an empty registry that only knows the primitive types, which
// is enough for type strings built from primitives ("Vec<(u16, Compact<u64>)>").
//
// Example:
//
//	ds := dynscale.NewDynScale(registry, dynscale.WithVerbose(), dynscale.WithLogCb(logger.Debugf))
func NewDynScale(registry *scaletypes.Registry, options ...DynScaleOption) *DynScale {
	if registry == nil {
		registry = scaletypes.NewRegistry()
	}

	opts := &DynScaleOptions{}
	for _, option := range options {
		option(opts)
	}

	ds := &DynScale{
		typeCache: scaletypes.NewTypeCache(registry),
		Verbose:   opts.Verbose,
		LogCb:     opts.LogCb,
	}

	if ds.LogCb == nil {
		ds.LogCb = func(format string, args ...any) {
			fmt.Printf(format+"\n", args...)
		}
	}

	return ds
}

// GetTypeCache returns the type cache for the DynScale instance.
func (d *DynScale) GetTypeCache() *scaletypes.TypeCache {
	return d.typeCache
}

// GetRegistry returns the registry the instance decodes against.
func (d *DynScale) GetRegistry() *scaletypes.Registry {
	return d.typeCache.Registry()
}

// Decode decodes data as the type described by the type string.
//
// The type string may be any name known to the registry ("SubnetInfo", "scale_info::12")
// or a composition of such names ("Vec<Option<NeuronInfo>>", "(u16, Compact<u64>)",
// "[u8; 32]").
//
// Parameters:
//   - typeStr: The type string of the encoded value
//   - data: The SCALE encoded bytes
//   - opts: Per-call options (WithLegacyAccountId, WithStrictLength)
//
// Returns:
//   - *Value: The decoded value tree
//   - error: ErrMalformedTypeString / ErrUnknownType for unresolvable type strings, a
//     *scaleutils.DecodeError for malformed data
func (d *DynScale) Decode(typeStr string, data []byte, opts ...CallOption) (*Value, error) {
	sourceType, err := d.typeCache.GetTypeDescriptor(typeStr)
	if err != nil {
		return nil, err
	}

	return d.DecodeType(sourceType, data, opts...)
}

// DecodeTypeId decodes data as the portable registry type with the given id.
func (d *DynScale) DecodeTypeId(typeId uint32, data []byte, opts ...CallOption) (*Value, error) {
	sourceType, err := d.GetRegistry().Resolve(typeId)
	if err != nil {
		return nil, err
	}

	return d.DecodeType(sourceType, data, opts...)
}

// DecodeType decodes data as the type described by the descriptor.
//
// Decoding is all-or-nothing: on failure no partial value is returned. Bytes left after the
// value are ignored unless WithStrictLength is passed.
func (d *DynScale) DecodeType(sourceType *scaletypes.TypeDescriptor, data []byte, opts ...CallOption) (*Value, error) {
	cfg := applyCallOptions(opts)
	dec := scaleutils.NewBufferDecoder(data)

	value, err := d.decodeType(sourceType, dec, cfg, 0)
	if err != nil {
		return nil, err
	}

	if cfg.strictLength && dec.GetLength() > 0 {
		return nil, scaleutils.NewDecodeError(dec.GetPosition(), sourceType.Name, fmt.Errorf("did not consume full scale range (consumed: %v, size: %v)", dec.GetPosition(), len(data)))
	}

	return value, nil
}

// DecodeFrom decodes one value from an existing decoder, leaving the decoder positioned after
// the value. It is used to decode concatenated values from one buffer.
func (d *DynScale) DecodeFrom(sourceType *scaletypes.TypeDescriptor, dec scaleutils.Decoder, opts ...CallOption) (*Value, error) {
	return d.decodeType(sourceType, dec, applyCallOptions(opts), 0)
}
