package config

import (
	"fmt"
	"strings"

	"github.com/c2h5oh/datasize"
)

const minimumEfiSize = 32 * datasize.MB

func efiSizeMiB(size string) (uint64, error) {
	bytes, err := parseSize(size)
	if err != nil {
		return 0, err
	}
	if datasize.ByteSize(bytes) < minimumEfiSize {
		return 0, fmt.Errorf("EFI size: %s is below minimum: %s",
			size, minimumEfiSize.HumanReadable())
	}
	if bytes%datasize.MB.Bytes() != 0 {
		return 0, fmt.Errorf("EFI size: %s is not a whole number of MiB", size)
	}
	return bytes / datasize.MB.Bytes(), nil
}

func parseSize(size string) (uint64, error) {
	text := strings.TrimSpace(size)
	if text == "" {
		return 0, fmt.Errorf("empty size")
	}
	// KiB, MiB and so on are spelled without the "i" here.
	if lower := strings.ToLower(text); strings.HasSuffix(lower, "ib") {
		text = text[:len(text)-2] + "B"
	}
	var byteSize datasize.ByteSize
	if err := byteSize.UnmarshalText([]byte(text)); err != nil {
		return 0, fmt.Errorf("error parsing size: %s: %s", size, err)
	}
	return byteSize.Bytes(), nil
}
