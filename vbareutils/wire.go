// Copyright (c) 2025 rivet-dev
// SPDX-License-Identifier: Apache-2.0
// This file is part of the vbare library.

package vbareutils

import "encoding/binary"

// EncodeEmbeddedVersion appends the 2-byte little-endian embedded-frame
// version prefix to dst.
func EncodeEmbeddedVersion(dst []byte, version uint16) []byte {
	return binary.LittleEndian.AppendUint16(dst, version)
}

// DecodeEmbeddedVersion splits an embedded frame into its version prefix
// and the remaining bare-frame body. It fails with ErrShortFrame if
// payload is shorter than 2 bytes.
func DecodeEmbeddedVersion(payload []byte) (version uint16, body []byte, err error) {
	if len(payload) < 2 {
		return 0, nil, ErrShortFrame
	}
	return binary.LittleEndian.Uint16(payload[:2]), payload[2:], nil
}
