// Package build runs the tag page generation step of a documentation build.
//
// A build resolves Settings from the loaded configuration, scans every
// markdown document of the host file collection for front matter, then
// renders and writes one listing page per configured tag category and
// registers each page back into the collection. Errors are fatal and are
// never retried.
package build
