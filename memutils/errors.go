package memutils

import "github.com/pkg/errors"

// PowerOfTwoError is the error returned from CheckPow2 or other methods if the number being tested is not a power of two
var PowerOfTwoError error = errors.New("number must be a power of two")

// OutOfMemoryError is returned when approving an allocation would exceed a configured byte limit
var OutOfMemoryError error = errors.New("heap size limit exhausted")

// TooManyBlocksError is returned when approving an allocation would exceed a configured block count limit
var TooManyBlocksError error = errors.New("heap block count limit exhausted")
