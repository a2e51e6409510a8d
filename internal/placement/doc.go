// Package placement renders destination paths from a naming template and
// executes the move/copy/hardlink/symlink/in-place operation that lands a
// scraped file in the library tree.
//
// Preview never touches disk: it renders the template, sanitizes each path
// segment, and lists the directories Execute would create. Execute performs
// the actual filesystem operation and fails closed if the destination
// already exists and is not the source file itself.
package placement
