// Package flac reads and writes the Vorbis comments and pictures of FLAC files.
package flac

import (
	"strings"

	"github.com/go-flac/flacpicture"
	"github.com/go-flac/flacvorbis"
	"github.com/go-flac/go-flac"
)

const (
	fieldAlbumArtist = "ALBUMARTIST"
	fieldLyrics      = "LYRICS"
	fieldUpstreamURL = "UPSTREAM_URL"
	pictureFront     = "Front cover"
)

// Tag exposes the same setters of an ID3 tag over a FLAC file
type Tag struct {
	path    string
	file    *flac.File
	comment *flacvorbis.MetaDataBlockVorbisComment
	picture *flacpicture.MetadataBlockPicture
}

func Open(path string) (*Tag, error) {
	file, err := flac.ParseFile(path)
	if err != nil {
		return nil, err
	}

	tag := &Tag{path: path, file: file}
	for _, meta := range file.Meta {
		switch meta.Type {
		case flac.VorbisComment:
			if tag.comment, err = flacvorbis.ParseFromMetaDataBlock(*meta); err != nil {
				return nil, err
			}
		case flac.Picture:
			if picture, err := flacpicture.ParseFromMetaDataBlock(*meta); err == nil && picture.PictureType == flacpicture.PictureTypeFrontCover {
				tag.picture = picture
			}
		}
	}
	if tag.comment == nil {
		tag.comment = flacvorbis.New()
	}
	return tag, nil
}

func (tag *Tag) set(field, value string) {
	prefix := strings.ToUpper(field) + "="
	comments := tag.comment.Comments[:0]
	for _, comment := range tag.comment.Comments {
		if !strings.HasPrefix(strings.ToUpper(comment), prefix) {
			comments = append(comments, comment)
		}
	}
	tag.comment.Comments = comments
	if value != "" {
		_ = tag.comment.Add(field, value)
	}
}

func (tag *Tag) get(field string) string {
	if values, err := tag.comment.Get(field); err == nil && len(values) > 0 {
		return values[0]
	}
	return ""
}

func (tag *Tag) SetTitle(title string) {
	tag.set(flacvorbis.FIELD_TITLE, title)
}

func (tag *Tag) Title() string {
	return tag.get(flacvorbis.FIELD_TITLE)
}

func (tag *Tag) SetArtist(artist string) {
	tag.set(flacvorbis.FIELD_ARTIST, artist)
}

func (tag *Tag) Artist() string {
	return tag.get(flacvorbis.FIELD_ARTIST)
}

func (tag *Tag) SetAlbumArtist(artist string) {
	tag.set(fieldAlbumArtist, artist)
}

func (tag *Tag) AlbumArtist() string {
	return tag.get(fieldAlbumArtist)
}

func (tag *Tag) SetAlbum(album string) {
	tag.set(flacvorbis.FIELD_ALBUM, album)
}

func (tag *Tag) Album() string {
	return tag.get(flacvorbis.FIELD_ALBUM)
}

func (tag *Tag) SetUnsynchronizedLyrics(_, lyrics string) {
	tag.set(fieldLyrics, lyrics)
}

func (tag *Tag) UnsynchronizedLyrics() string {
	return tag.get(fieldLyrics)
}

func (tag *Tag) SetUpstreamURL(url string) {
	tag.set(fieldUpstreamURL, url)
}

func (tag *Tag) UpstreamURL() string {
	return tag.get(fieldUpstreamURL)
}

// SetAttachedPicture fails silently on data that does not decode as an image
func (tag *Tag) SetAttachedPicture(picture []byte, mimeType string) {
	if block, err := flacpicture.NewFromImageData(flacpicture.PictureTypeFrontCover, pictureFront, picture, mimeType); err == nil {
		tag.picture = block
	}
}

func (tag *Tag) AttachedPicture() []byte {
	if tag.picture == nil {
		return nil
	}
	return tag.picture.ImageData
}

// Save rewrites the file with the current comments and front cover
func (tag *Tag) Save() error {
	meta := make([]*flac.MetaDataBlock, 0, len(tag.file.Meta)+2)
	for _, block := range tag.file.Meta {
		if block.Type == flac.VorbisComment {
			continue
		}
		if block.Type == flac.Picture && tag.picture != nil {
			if picture, err := flacpicture.ParseFromMetaDataBlock(*block); err == nil && picture.PictureType == flacpicture.PictureTypeFrontCover {
				continue
			}
		}
		meta = append(meta, block)
	}

	comment := tag.comment.Marshal()
	meta = append(meta, &comment)
	if tag.picture != nil {
		picture := tag.picture.Marshal()
		meta = append(meta, &picture)
	}
	tag.file.Meta = meta
	return tag.file.Save(tag.path)
}

func (tag *Tag) Close() error {
	return nil
}
