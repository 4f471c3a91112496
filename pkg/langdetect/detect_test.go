package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/cctok/pkg/langdetect"
)

func TestFromFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		filename string
		content  string
		expected langdetect.Language
		ok       bool
	}{
		{"c source", "src/main.c", "", langdetect.C, true},
		{"cpp source", "widget.cpp", "", langdetect.CPP, true},
		{"cc source", "widget.cc", "", langdetect.CPP, true},
		{"hpp header", "widget.hpp", "", langdetect.CPP, true},
		{"objc source", "AppDelegate.m", "", langdetect.ObjC, true},
		{"objc++ source", "Bridge.mm", "", langdetect.ObjCPP, true},
		{"empty header defaults to c", "api.h", "", langdetect.C, true},
		{"objc header", "View.h", "@interface View : NSObject\n@end\n", langdetect.ObjC, true},
		{"cpp header", "util.h", "namespace util {\nint f();\n}\n", langdetect.CPP, true},
		{"not c family", "README.md", "# title", langdetect.Unknown, false},
		{"no extension", "Makefile", "all:\n", langdetect.Unknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := langdetect.FromFilename(tt.filename, []byte(tt.content))
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFromXFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value    string
		expected langdetect.Language
		ok       bool
	}{
		{"c", langdetect.C, true},
		{"c-header", langdetect.C, true},
		{"c++", langdetect.CPP, true},
		{"c++-header", langdetect.CPP, true},
		{"objective-c", langdetect.ObjC, true},
		{"objective-c++-header", langdetect.ObjCPP, true},
		{"objc-cpp-output", langdetect.ObjC, true},
		{"assembler", langdetect.Unknown, false},
		{"swift", langdetect.Unknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Parallel()

			got, ok := langdetect.FromXFlag(tt.value)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFromDriver(t *testing.T) {
	t.Parallel()

	assert.Equal(t, langdetect.CPP, langdetect.FromDriver("/usr/bin/clang++"))
	assert.Equal(t, langdetect.CPP, langdetect.FromDriver("g++"))
	assert.Equal(t, langdetect.C, langdetect.FromDriver("/usr/bin/cc"))
	assert.Equal(t, langdetect.C, langdetect.FromDriver("clang"))
}

func TestLanguagePredicates(t *testing.T) {
	t.Parallel()

	assert.True(t, langdetect.CPP.IsCPlusPlus())
	assert.True(t, langdetect.ObjCPP.IsCPlusPlus())
	assert.False(t, langdetect.C.IsCPlusPlus())
	assert.True(t, langdetect.ObjC.IsObjC())
	assert.True(t, langdetect.ObjCPP.IsObjC())
	assert.False(t, langdetect.CPP.IsObjC())
	assert.Equal(t, "text", langdetect.Unknown.String())
	assert.Equal(t, "objective-c", langdetect.ObjC.String())
}
