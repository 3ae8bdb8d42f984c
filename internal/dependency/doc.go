// Package dependency provides a small directed graph used by the container to
// validate service references before a container is handed out.
//
// Nodes are service definitions or aliases; an edge from A to B means A needs
// B to be constructed first. The container compiler uses Missing to report
// references to ids that were never registered and Sort to obtain a
// construction order, which doubles as cycle detection.
//
// The graph is not thread-safe; the container builds one per compilation.
package dependency
