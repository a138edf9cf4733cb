package platform

import (
	"path/filepath"

	"github.com/beevik/etree"
)

// defaultBundleExecutable is used when a bundle's Info.plist is missing or
// does not name its executable
const defaultBundleExecutable = "Unity"

// BundleExecutable returns the executable inside a macOS .app bundle, as
// named by CFBundleExecutable in Contents/Info.plist.
func BundleExecutable(bundlePath string) string {
	name := defaultBundleExecutable
	if exe := plistString(filepath.Join(bundlePath, "Contents", "Info.plist"), "CFBundleExecutable"); exe != "" {
		name = exe
	}
	return filepath.Join(bundlePath, "Contents", "MacOS", name)
}

// plistString reads a top-level string value from an XML property list
func plistString(plistPath, key string) string {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(plistPath); err != nil {
		return ""
	}
	dict := doc.FindElement("/plist/dict")
	if dict == nil {
		return ""
	}
	children := dict.ChildElements()
	for i := 0; i+1 < len(children); i++ {
		if children[i].Tag == "key" && children[i].Text() == key && children[i+1].Tag == "string" {
			return children[i+1].Text()
		}
	}
	return ""
}
