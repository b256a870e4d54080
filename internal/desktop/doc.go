// Package desktop resolves desktop-launcher descriptors for snaps.
//
// snapd exports one desktop entry per application as
// <snap>_<app>.desktop inside a well-known directory; launcher badge
// updates are addressed to those file names and progress dialogs take
// their display name and icon from the entry contents. The Lookup type
// scans the directory by prefix, parses the minimal Desktop Entry subset
// needed (Name and Icon), and keeps a cache that an fsnotify watcher
// invalidates when entries are installed or removed.
package desktop
