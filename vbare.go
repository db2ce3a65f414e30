// Copyright (c) 2025 rivet-dev
// SPDX-License-Identifier: Apache-2.0
// This file is part of the vbare library.

// Package vbare provides a versioned binary data migration core: a
// version-chain migration engine that decodes a wire payload tagged with a
// schema version into the latest schema by walking a chain of per-step
// upgrade converters, and symmetrically down-converts a latest value along
// a chain of downgrade converters before encoding it at an older wire
// version.
//
// The engine never touches the byte-level codec itself. A participating
// type supplies DeserializeVersion/SerializeVersion callbacks that defer to
// whatever codec the host application already uses; vbare only owns the
// chain-walking and framing logic around those callbacks.
//
// Example usage:
//
//	vd := vbare.NewVersionedData[MyUnion, MyLatest](3)
//	vd.WrapLatest = wrapLatest
//	vd.UnwrapLatest = unwrapLatest
//	vd.DeserializeVersion = deserializeVersion
//	vd.SerializeVersion = serializeVersion
//	vd.UpgradeConverters = []vbare.Converter[MyUnion]{v1ToV2, v2ToV3}
//	vd.DowngradeConverters = []vbare.Converter[MyUnion]{v3ToV2, v2ToV1}
//
//	latest, err := vd.Deserialize(payload, wireVersion)
//	bytes, err := vd.Serialize(vd.WrapLatest(latest), wireVersion)
package vbare

import (
	"fmt"

	"github.com/rivet-dev/vbare/vbareutils"
)

// Converter transforms a versioned value by one step. An upgrade converter
// promotes variant Vi to V(i+1); a downgrade converter demotes V(i+1) to
// Vi. Both must be identity on every variant they do not own: given a value
// that is not their expected source variant, they must return it unchanged.
// The engine does not verify this; violating it corrupts the chain.
type Converter[V any] func(V) (V, error)

// VersionedData is the engine's view of a user's versioned type. V is the
// closed tagged union of per-version concrete types (however the host
// models a closed sum type in Go — a discriminated struct, a sealed
// interface, and so on); L is the concrete type of the latest version, Tn.
//
// Converters are data, not virtual methods: UpgradeConverters and
// DowngradeConverters are plain slices of function values indexed by
// source-version offset, so the identity-on-mismatch rule can be applied
// uniformly and the chain can be truncated from either end without any
// variant needing to know about any other variant.
type VersionedData[V any, L any] struct {
	// Latest is N, the highest supported schema version.
	Latest uint16

	// WrapLatest constructs the VN variant from a latest value.
	WrapLatest func(L) V
	// UnwrapLatest succeeds iff v is currently variant VN.
	UnwrapLatest func(v V) (L, error)
	// DeserializeVersion decodes payload as Tversion and wraps it as
	// variant Vversion. It must fail with vbareutils.ErrUnknownVersion (or
	// an error satisfying errors.Is with it) if version is outside
	// 1..=Latest.
	DeserializeVersion func(payload []byte, version uint16) (V, error)
	// SerializeVersion encodes whichever variant v currently is. version
	// is informational only: correctness depends on v already being the
	// matching variant, which the engine guarantees by running the
	// down-chain first.
	SerializeVersion func(v V, version uint16) ([]byte, error)

	// UpgradeConverters holds U1..U(N-1), in application order.
	UpgradeConverters []Converter[V]
	// DowngradeConverters holds D(N-1)..D1, in application order
	// (highest to lowest).
	DowngradeConverters []Converter[V]

	opts options[V, L]
}

// NewVersionedData constructs a VersionedData for a type whose latest
// schema version is latest. Converters and callbacks are set as struct
// fields after construction; NewVersionedData itself only applies
// diagnostic options.
func NewVersionedData[V any, L any](latest uint16, opts ...Option[V, L]) *VersionedData[V, L] {
	vd := &VersionedData[V, L]{
		Latest: latest,
		opts:   options[V, L]{logCb: defaultLogCb},
	}
	for _, opt := range opts {
		opt(&vd.opts)
	}
	return vd
}

func (vd *VersionedData[V, L]) logf(format string, args ...any) {
	if vd.opts.verbose && vd.opts.logCb != nil {
		vd.opts.logCb(format+"\n", args...)
	}
}

// Deserialize decodes payload as the given wire version and walks the
// upgrade chain up to the latest version, returning the latest concrete
// value. It skips wireVersion-1 upgrade converters and applies the
// remaining N-wireVersion in order, which is equivalent to (and cheaper
// than) applying all N-1 converters and relying on identity-on-mismatch.
func (vd *VersionedData[V, L]) Deserialize(payload []byte, wireVersion uint16) (L, error) {
	var zero L

	if wireVersion < 1 || wireVersion > vd.Latest {
		return zero, fmt.Errorf("%w: %d", vbareutils.ErrUnknownVersion, wireVersion)
	}

	v, err := vd.DeserializeVersion(payload, wireVersion)
	if err != nil {
		return zero, &vbareutils.DecodeError{Version: wireVersion, Err: err}
	}

	start := int(wireVersion) - 1
	for i := start; i < len(vd.UpgradeConverters); i++ {
		v, err = vd.UpgradeConverters[i](v)
		if err != nil {
			return zero, &vbareutils.ConvertError{Direction: vbareutils.Upgrade, Step: i + 1, Err: err}
		}
		vd.logf("vbare: applied upgrade converter %d/%d", i+1, len(vd.UpgradeConverters))
	}

	latest, err := vd.UnwrapLatest(v)
	if err != nil {
		return zero, fmt.Errorf("%w: %v", vbareutils.ErrVersionMismatch, err)
	}
	return latest, nil
}

// Serialize walks the downgrade chain from v (typically, but not
// necessarily, the VN variant produced by WrapLatest) down to wireVersion,
// then encodes the result. DowngradeConverters is ordered highest to
// lowest (D(N-1)..D1); Serialize applies the first N-wireVersion of them.
func (vd *VersionedData[V, L]) Serialize(v V, wireVersion uint16) ([]byte, error) {
	if wireVersion < 1 || wireVersion > vd.Latest {
		return nil, fmt.Errorf("%w: %d", vbareutils.ErrUnknownVersion, wireVersion)
	}

	steps := int(vd.Latest) - int(wireVersion)
	for i := 0; i < steps; i++ {
		var err error
		v, err = vd.DowngradeConverters[i](v)
		if err != nil {
			return nil, &vbareutils.ConvertError{Direction: vbareutils.Downgrade, Step: i + 1, Err: err}
		}
		vd.logf("vbare: applied downgrade converter %d/%d", i+1, steps)
	}

	body, err := vd.SerializeVersion(v, wireVersion)
	if err != nil {
		return nil, &vbareutils.EncodeError{Version: wireVersion, Err: err}
	}
	return body, nil
}

// DeserializeWithEmbeddedVersion reads the 2-byte little-endian version
// prefix from payload and delegates to Deserialize with the remaining
// bytes as the bare frame.
func (vd *VersionedData[V, L]) DeserializeWithEmbeddedVersion(payload []byte) (L, error) {
	var zero L

	version, body, err := vbareutils.DecodeEmbeddedVersion(payload)
	if err != nil {
		return zero, err
	}
	return vd.Deserialize(body, version)
}

// SerializeWithEmbeddedVersion serializes v at wireVersion and prepends the
// 2-byte little-endian embedded-frame version prefix.
func (vd *VersionedData[V, L]) SerializeWithEmbeddedVersion(v V, wireVersion uint16) ([]byte, error) {
	body, err := vd.Serialize(v, wireVersion)
	if err != nil {
		return nil, err
	}
	frame := vbareutils.EncodeEmbeddedVersion(make([]byte, 0, 2+len(body)), wireVersion)
	return append(frame, body...), nil
}
