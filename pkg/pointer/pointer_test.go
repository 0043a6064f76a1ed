// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pointer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/techblog/pkg/pointer"
)

/*
TestPointer verifies dereferencing of present and missing optional fields.
*/
func TestPointer(t *testing.T) {
	seven, zero := 7, 0

	assert.Equal(t, 7, pointer.Val(&seven))
	assert.Equal(t, "", pointer.Val[string](nil))

	assert.Equal(t, 5, pointer.Fallback[int](nil, 5))
	assert.Equal(t, 0, pointer.Fallback(&zero, 5))
}
