package photo

import (
	"Employee-Portal-Backend/domain"
	"bytes"
	"encoding/base64"
	"strings"

	"github.com/beevik/etree"
)

// photoLinkTags holds the lower-cased link element spellings seen across
// vendor export versions.
var photoLinkTags = map[string]struct{}{
	"koppeling_medewerker_fotos":  {},
	"koppeling_medewerkers_fotos": {},
}

var (
	jpegMagic = []byte{0xFF, 0xD8, 0xFF}
	pngMagic  = []byte{0x89, 'P', 'N', 'G'}
)

// PhotoLink is one decoded employee/photo pairing from the manifest.
type PhotoLink struct {
	MedewerkerNumber string
	Data             []byte
	ImageType        string
}

// ExtractPhotoLinks parses the manifest and returns every link element in
// document order. Link elements missing the Medewerker or Afbeelding child
// are skipped without error; vendor exports routinely contain partial
// records.
func ExtractPhotoLinks(xmlBytes []byte) ([]PhotoLink, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(xmlBytes); err != nil {
		return nil, domain.ErrMalformedXML
	}

	root := doc.Root()
	if root == nil {
		return nil, domain.ErrMalformedXML
	}

	var links []PhotoLink
	collectPhotoLinks(root, &links)
	return links, nil
}

func collectPhotoLinks(elem *etree.Element, links *[]PhotoLink) {
	if _, ok := photoLinkTags[strings.ToLower(elem.Tag)]; ok {
		if link, ok := parseLinkElement(elem); ok {
			*links = append(*links, link)
		}
	}

	for _, child := range elem.ChildElements() {
		collectPhotoLinks(child, links)
	}
}

func parseLinkElement(elem *etree.Element) (PhotoLink, bool) {
	medewerker := findChildFold(elem, "Medewerker")
	afbeelding := findChildFold(elem, "Afbeelding")
	if medewerker == nil || afbeelding == nil {
		return PhotoLink{}, false
	}

	data := decodePayload(strings.TrimSpace(afbeelding.Text()))
	return PhotoLink{
		MedewerkerNumber: strings.TrimSpace(medewerker.Text()),
		Data:             data,
		ImageType:        detectImageType(data),
	}, true
}

func findChildFold(elem *etree.Element, tag string) *etree.Element {
	for _, child := range elem.ChildElements() {
		if strings.EqualFold(child.Tag, tag) {
			return child
		}
	}
	return nil
}

// decodePayload tries a strict base64 decode first; the vendor occasionally
// emits unencoded payloads, which are passed through as raw UTF-8 bytes. Any
// character outside the base64 alphabet forces the raw path, embedded
// newlines included: Go's decoder tolerates \r and \n, but the vendor
// contract treats such payloads as not encoded at all.
func decodePayload(raw string) []byte {
	for _, r := range raw {
		if !isBase64Char(r) {
			return []byte(raw)
		}
	}

	decoded, err := base64.StdEncoding.Strict().DecodeString(raw)
	if err != nil {
		return []byte(raw)
	}
	return decoded
}

func isBase64Char(r rune) bool {
	switch {
	case r >= 'A' && r <= 'Z',
		r >= 'a' && r <= 'z',
		r >= '0' && r <= '9',
		r == '+', r == '/', r == '=':
		return true
	}
	return false
}

// detectImageType classifies the payload by magic bytes. Unknown prefixes
// deliberately fall back to "jpg" rather than an unknown tag, matching the
// behavior downstream consumers depend on.
func detectImageType(data []byte) string {
	switch {
	case bytes.HasPrefix(data, jpegMagic):
		return "jpg"
	case bytes.HasPrefix(data, pngMagic):
		return "png"
	default:
		return "jpg"
	}
}
