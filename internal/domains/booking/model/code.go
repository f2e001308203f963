package model

import (
	"crypto/rand"
	"time"
)

const codeSuffixLength = 6

// GenerateCode builds a human readable booking code such as RST-20260314-K7QM2X.
func GenerateCode(prefix string, now time.Time) string {
	return prefix + "-" + now.Format("20060102") + "-" + rand.Text()[:codeSuffixLength]
}
