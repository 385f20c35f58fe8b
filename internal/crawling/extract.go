package crawling

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/sustainability-chatbot/internal/types"
)

// Class patterns for the section-style page layouts. Each layout appears
// with both a "page-section-" and a "section-" class variant.
const (
	sectionSelector = ".page-section-ut_feature, .section-ut_feature, " +
		".page-section-ut_text, .section-ut_text, " +
		".page-section-ut_image_with_text, .section-ut_image_with_text"
	slideshowSelector = ".section-ut_slideshow, .page-section-ut_slideshow"
)

// ExtractRecords produces zero or more content records from a parsed page.
// Five independent sub-extractors scan for distinct structural patterns;
// the result is their concatenation in a fixed order. Each logical record
// starts from a fresh copy of the page template so extraction branches
// never share state.
func ExtractRecords(doc *goquery.Document, template types.PageTemplate) []types.ContentRecord {
	var records []types.ContentRecord
	records = append(records, extractMainContent(doc, template)...)
	records = append(records, extractSectionContent(doc, template)...)
	records = append(records, extractAccordionContent(doc, template)...)
	records = append(records, extractCardGroups(doc, template)...)
	records = append(records, extractSlideshows(doc, template)...)
	return records
}

// extractMainContent walks the editor region under #main-content in document
// order. A heading (h1-h3) closes the accumulating record and opens a new one
// with that heading as Header; paragraph and list-item text accumulates into
// Content with trailing space separators.
func extractMainContent(doc *goquery.Document, template types.PageTemplate) []types.ContentRecord {
	var records []types.ContentRecord

	editor := doc.Find("#main-content").First().Find(".editor-content").First()
	if editor.Length() == 0 {
		return records
	}

	current := template.Fresh()
	flush := func() {
		if current.Header != "" || current.Content != "" {
			records = append(records, current)
		}
	}

	editor.Children().Each(func(_ int, child *goquery.Selection) {
		switch goquery.NodeName(child) {
		case "h1", "h2", "h3":
			flush()
			current = template.Fresh()
			current.Header = strings.TrimSpace(child.Text())
		case "p":
			current.Content += strings.TrimSpace(child.Text()) + " "
		case "ul":
			child.Find("li").Each(func(_ int, li *goquery.Selection) {
				current.Content += li.Text() + " "
			})
		}
	})
	flush()

	return records
}

// extractSectionContent scans the feature/text/image-with-text section
// layouts. Within each editor region, list items become their own one-line
// records; the first heading h1 through h4 becomes the Header of the section
// record, with paragraph text (or span text when no paragraphs exist)
// accumulated as Content.
func extractSectionContent(doc *goquery.Document, template types.PageTemplate) []types.ContentRecord {
	var records []types.ContentRecord

	doc.Find(sectionSelector).Each(func(_ int, section *goquery.Selection) {
		section.Find(".editor-content").Each(func(_ int, editor *goquery.Selection) {
			rec := template.Fresh()

			editor.Find("ul").First().Find("li").Each(func(_ int, li *goquery.Selection) {
				item := template.Fresh()
				item.Content = li.Text()
				records = append(records, item)
			})

			for _, level := range []string{"h1", "h2", "h3", "h4"} {
				if heading := editor.Find(level).First(); heading.Length() > 0 {
					rec.Header = strings.TrimSpace(heading.Text())
					break
				}
			}

			paragraphs := editor.Find("p")
			if paragraphs.Length() > 0 {
				paragraphs.Each(func(_ int, p *goquery.Selection) {
					rec.Content += p.Text() + " "
				})
			} else {
				editor.Find("span").Each(func(_ int, span *goquery.Selection) {
					rec.Content += span.Text() + " "
				})
			}

			records = append(records, rec)
		})
	})

	return records
}

// extractAccordionContent yields one record per accordion card: the card
// header becomes Header, the card body becomes Content.
func extractAccordionContent(doc *goquery.Document, template types.PageTemplate) []types.ContentRecord {
	var records []types.ContentRecord

	doc.Find(".accordion").Each(func(_ int, accordion *goquery.Selection) {
		accordion.Find(".card").Each(func(_ int, card *goquery.Selection) {
			rec := template.Fresh()
			if header := card.Find(".card-header").First(); header.Length() > 0 {
				rec.Header = strings.TrimSpace(header.Text())
			}
			if body := card.Find(".card-body").First(); body.Length() > 0 {
				rec.Content = strings.TrimSpace(body.Text())
			}
			records = append(records, rec)
		})
	})

	return records
}

// extractCardGroups yields one record per card in a card group: the card
// title becomes Header, the card text becomes Content.
func extractCardGroups(doc *goquery.Document, template types.PageTemplate) []types.ContentRecord {
	var records []types.ContentRecord

	doc.Find(".card-group").Each(func(_ int, group *goquery.Selection) {
		group.Find(".card-wrap").Each(func(_ int, card *goquery.Selection) {
			rec := template.Fresh()
			if title := card.Find(".card-title").First(); title.Length() > 0 {
				rec.Header = strings.TrimSpace(title.Text())
			}
			if text := card.Find(".card-text").First(); text.Length() > 0 {
				rec.Content = strings.TrimSpace(text.Text())
			}
			records = append(records, rec)
		})
	})

	return records
}

// extractSlideshows yields one record per slideshow item, searched across
// both slideshow class variants: the caption title becomes Header, the
// caption content becomes Content.
func extractSlideshows(doc *goquery.Document, template types.PageTemplate) []types.ContentRecord {
	var records []types.ContentRecord

	doc.Find(slideshowSelector).Each(func(_ int, show *goquery.Selection) {
		show.Find(".slideshow-item").Each(func(_ int, item *goquery.Selection) {
			rec := template.Fresh()
			if title := item.Find(".slideshow-caption-title").First(); title.Length() > 0 {
				rec.Header = strings.TrimSpace(title.Text())
			}
			if content := item.Find(".slideshow-caption-content").First(); content.Length() > 0 {
				rec.Content = content.Text()
			}
			records = append(records, rec)
		})
	})

	return records
}
