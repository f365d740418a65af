package esbuild

import (
	"fmt"
	"path"
	"strings"

	"go.trai.ch/ybuild/internal/core/domain"
)

const (
	useStrict = "\"use strict\";\n"

	amdHeader = "define(function (require, exports, module) {\n"
	amdFooter = "});"

	systemHeader = `System.register([], function (_export) {
var module = { exports: {} }, exports = module.exports;
return { setters: [], execute: function () {
`
	systemFooter = "_export(module.exports);\n} };\n});"

	umdHeader = `(function (root, factory) {
if (typeof define === "function" && define.amd) { define(["require", "exports", "module"], factory); }
else if (typeof module === "object" && module.exports) { factory(require, exports, module); }
else { var m = { exports: {} }; factory(function () {}, m.exports, m); root[%q] = m.exports; }
})(this, function (require, exports, module) {
`
	umdFooter = "});"
)

// moduleWrapper returns the banner and footer placed around a CommonJS body
// for the given module type. name is used as the global for UMD builds.
func moduleWrapper(module domain.ModuleType, name string) (banner, footer string) {
	strict := ""
	if module.Strict() {
		strict = useStrict
	}

	switch module {
	case domain.ModuleAMD, domain.ModuleAMDStrict:
		return amdHeader + strict, amdFooter
	case domain.ModuleSystem:
		return systemHeader, systemFooter
	case domain.ModuleUMD, domain.ModuleUMDStrict:
		return fmt.Sprintf(umdHeader, globalName(name)) + strict, umdFooter
	default:
		return strict, ""
	}
}

// globalName turns a bundle file name such as "y-webrtc.js" into "yWebrtc".
func globalName(file string) string {
	base := strings.TrimSuffix(path.Base(file), path.Ext(file))
	parts := strings.FieldsFunc(base, func(r rune) bool {
		return r == '-' || r == '.' || r == '_' || r == ' '
	})
	var b strings.Builder
	for i, p := range parts {
		if i > 0 {
			p = strings.ToUpper(p[:1]) + p[1:]
		}
		b.WriteString(p)
	}
	return b.String()
}
