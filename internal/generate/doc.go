// Package generate runs the docnav pipeline: resolve the navigation tree,
// validate it, check its links and write every configured target.
package generate
