// Package id3 reads and writes the ID3v2 tags of MP3 files.
package id3

import (
	"github.com/bogem/id3v2/v2"
)

const (
	frameUpstreamURL = "upstream_url"
	lyricsLanguage   = "eng"
	pictureFront     = "Front cover"
)

type Tag struct {
	*id3v2.Tag
}

func Open(path string, options id3v2.Options) (*Tag, error) {
	tag, err := id3v2.Open(path, options)
	if err != nil {
		return nil, err
	}
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	tag.SetVersion(4)
	return &Tag{tag}, nil
}

func (tag *Tag) SetAlbumArtist(artist string) {
	tag.AddTextFrame(tag.CommonID("Band/Orchestra/Accompaniment"), tag.DefaultEncoding(), artist)
}

func (tag *Tag) AlbumArtist() string {
	return tag.GetTextFrame(tag.CommonID("Band/Orchestra/Accompaniment")).Text
}

func (tag *Tag) SetAttachedPicture(picture []byte, mimeType string) {
	id := tag.CommonID("Attached picture")
	tag.DeleteFrames(id)
	tag.AddAttachedPicture(id3v2.PictureFrame{
		Encoding:    tag.DefaultEncoding(),
		MimeType:    mimeType,
		PictureType: id3v2.PTFrontCover,
		Description: pictureFront,
		Picture:     picture,
	})
}

func (tag *Tag) AttachedPicture() (picture []byte) {
	for _, frame := range tag.GetFrames(tag.CommonID("Attached picture")) {
		if frame, ok := frame.(id3v2.PictureFrame); ok {
			return frame.Picture
		}
	}
	return
}

func (tag *Tag) SetUnsynchronizedLyrics(title, lyrics string) {
	id := tag.CommonID("Unsynchronised lyrics/text transcription")
	tag.DeleteFrames(id)
	tag.AddUnsynchronisedLyricsFrame(id3v2.UnsynchronisedLyricsFrame{
		Encoding:          tag.DefaultEncoding(),
		Language:          lyricsLanguage,
		ContentDescriptor: title,
		Lyrics:            lyrics,
	})
}

func (tag *Tag) UnsynchronizedLyrics() string {
	for _, frame := range tag.GetFrames(tag.CommonID("Unsynchronised lyrics/text transcription")) {
		if frame, ok := frame.(id3v2.UnsynchronisedLyricsFrame); ok {
			return frame.Lyrics
		}
	}
	return ""
}

func (tag *Tag) SetUpstreamURL(url string) {
	tag.setUserDefinedText(frameUpstreamURL, url)
}

func (tag *Tag) UpstreamURL() string {
	return tag.userDefinedText(frameUpstreamURL)
}

func (tag *Tag) setUserDefinedText(key, value string) {
	frames := tag.GetFrames(tag.CommonID("User defined text information frame"))
	tag.DeleteFrames(tag.CommonID("User defined text information frame"))
	for _, frame := range frames {
		if frame, ok := frame.(id3v2.UserDefinedTextFrame); ok && frame.Description != key {
			tag.AddUserDefinedTextFrame(frame)
		}
	}
	tag.AddUserDefinedTextFrame(id3v2.UserDefinedTextFrame{
		Encoding:    tag.DefaultEncoding(),
		Description: key,
		Value:       value,
	})
}

func (tag *Tag) userDefinedText(key string) string {
	for _, frame := range tag.GetFrames(tag.CommonID("User defined text information frame")) {
		if frame, ok := frame.(id3v2.UserDefinedTextFrame); ok && frame.Description == key {
			return frame.Value
		}
	}
	return ""
}
