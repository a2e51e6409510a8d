package sidecar

import "encoding/xml"

// tvShowNFO is the root element of tvshow.nfo.
type tvShowNFO struct {
	XMLName   xml.Name   `xml:"tvshow"`
	Title     string     `xml:"title"`
	ShowTitle string     `xml:"showtitle"`
	Plot      string     `xml:"plot,omitempty"`
	Genres    []string   `xml:"genre,omitempty"`
	Premiered string     `xml:"premiered,omitempty"`
	Status    string     `xml:"status,omitempty"`
	Rating    float64    `xml:"rating,omitempty"`
	UniqueID  uniqueIDXML `xml:"uniqueid"`
}

// seasonNFO is the root element of season.nfo.
type seasonNFO struct {
	XMLName      xml.Name    `xml:"season"`
	SeasonNumber int         `xml:"seasonnumber"`
	Title        string      `xml:"title"`
	Plot         string      `xml:"plot,omitempty"`
	Premiered    string      `xml:"premiered,omitempty"`
	UniqueID     uniqueIDXML `xml:"uniqueid"`
}

// episodeNFO is the root element of an episode's sidecar.
type episodeNFO struct {
	XMLName       xml.Name    `xml:"episodedetails"`
	Title         string      `xml:"title"`
	ShowTitle     string      `xml:"showtitle"`
	Season        int         `xml:"season"`
	Episode       int         `xml:"episode"`
	Plot          string      `xml:"plot,omitempty"`
	Aired         string      `xml:"aired,omitempty"`
	Rating        float64     `xml:"rating,omitempty"`
	UniqueID      uniqueIDXML `xml:"uniqueid"`
}

// uniqueIDXML records the upstream MDB identifier Kodi/Jellyfin use to
// re-fetch/refresh metadata without re-running identification.
type uniqueIDXML struct {
	Type    string `xml:"type,attr"`
	Default string `xml:"default,attr"`
	Value   int64  `xml:",chardata"`
}

func mdbUniqueID(id int64) uniqueIDXML {
	return uniqueIDXML{Type: "tmdb", Default: "true", Value: id}
}
