// Package artwork downloads series posters/backdrops and episode still
// images from an mdb.Client's image CDN into a library folder, skipping any
// image that already exists on disk.
package artwork
