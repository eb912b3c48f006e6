package normalize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/devillers/checkin-sub000/internal/domain"
)

var keyCleanRe = regexp.MustCompile(`[^a-z0-9]+`)

// normalizeMedias walks medias.categories (absent → empty) and produces both
// the per-category nested lists and the single cross-category flattened list,
// in category-then-item input order. Identifiers missing from the submission
// are minted through ids.
func normalizeMedias(medias map[string]any, ids domain.IDGenerator) (domain.Medias, error) {
	raw := domain.SubSlice(medias, "categories")
	out := domain.Medias{
		Categories: make([]domain.MediaCategory, 0, len(raw)),
		Flattened:  make([]domain.FlattenedMediaItem, 0, len(raw)),
	}

	for i, rc := range raw {
		c := asMap(rc)

		cat := domain.MediaCategory{
			ID:               idOr(c["id"], ids),
			Label:            trimmedString(c["label"]),
			Title:            trimmedString(c["title"]),
			ShortDescription: trimmedString(c["shortDescription"]),
			IsCover:          asBool(c["isCover"]),
			Order:            orderOr(c["order"], i*10),
		}
		if cat.Label == "" {
			cat.Label = fmt.Sprintf("Category %d", i+1)
		}
		cat.Key = trimmedString(c["key"])
		if cat.Key == "" {
			cat.Key = keyFromLabel(cat.Label)
		}

		video, err := validateURL(c["videoUrl"], urlOpts{
			AllowEmpty: true,
			ErrMessage: "video URL is not a valid http(s) link",
		})
		if err != nil {
			return domain.Medias{}, prefixCategory(cat.Label, err)
		}
		cat.VideoURL = video

		items := domain.SubSlice(c, "medias")
		cat.Medias = make([]domain.MediaItem, 0, len(items))
		for j, ri := range items {
			m := asMap(ri)

			item := domain.MediaItem{
				ID:      idOr(m["id"], ids),
				Credit:  trimmedString(m["credit"]),
				IsHero:  asBool(m["isHero"]),
				IsCover: asBool(m["isCover"]),
				Hidden:  asBool(m["hidden"]),
				Order:   orderOr(m["order"], j*10),
			}

			u, err := validateURL(m["url"], urlOpts{
				ErrMessage: fmt.Sprintf("a media in %q is missing a valid URL", cat.Label),
			})
			if err != nil {
				return domain.Medias{}, err
			}
			item.URL = u

			item.Alt = trimmedString(m["alt"])
			if item.Alt == "" {
				return domain.Medias{}, failf("a media in %q is missing its alt text", cat.Label)
			}

			thumb, err := validateURL(m["thumbnailUrl"], urlOpts{
				AllowEmpty: true,
				ErrMessage: "thumbnail URL is not a valid http(s) link",
			})
			if err != nil {
				return domain.Medias{}, prefixCategory(cat.Label, err)
			}
			item.ThumbnailURL = thumb

			cat.Medias = append(cat.Medias, item)
			out.Flattened = append(out.Flattened, domain.FlattenedMediaItem{
				MediaItem:  item,
				CategoryID: cat.ID,
			})
		}

		out.Categories = append(out.Categories, cat)
	}

	return out, nil
}

// selectHero picks the primary profile image: first item flagged isHero in
// flattened order, else the very first flattened item, else nil. Several items
// may carry the flag; the first one wins and the rest are ignored.
func selectHero(flat []domain.FlattenedMediaItem) *domain.FlattenedMediaItem {
	return firstFlagged(flat, func(m domain.FlattenedMediaItem) bool { return m.IsHero })
}

// selectCover picks the featured gallery image with the same first-match rule
// on the isCover flag.
func selectCover(flat []domain.FlattenedMediaItem) *domain.FlattenedMediaItem {
	return firstFlagged(flat, func(m domain.FlattenedMediaItem) bool { return m.IsCover })
}

func firstFlagged(flat []domain.FlattenedMediaItem, flagged func(domain.FlattenedMediaItem) bool) *domain.FlattenedMediaItem {
	for i := range flat {
		if flagged(flat[i]) {
			return &flat[i]
		}
	}
	if len(flat) > 0 {
		return &flat[0]
	}
	return nil
}

func idOr(v any, ids domain.IDGenerator) string {
	if s := trimmedString(v); s != "" {
		return s
	}
	return ids.NewID()
}

func keyFromLabel(label string) string {
	k := keyCleanRe.ReplaceAllString(strings.ToLower(label), "-")
	return strings.Trim(k, "-")
}

func asMap(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return nil
}

func prefixCategory(label string, err error) error {
	if ve, ok := err.(*ValidationError); ok {
		return failf("%s: %s", label, ve.Message)
	}
	return err
}
