package dto

import (
	"encoding/json"
	"fmt"
	"time"
)

type ContentType string

const (
	ContentTypeCollection ContentType = "collection"
	ContentTypePdf        ContentType = "pdf"
)

type CollectionRankRule string

const (
	RankByCreateTimeAsc  CollectionRankRule = "BY_CREATE_TIME_ASC"
	RankByCreateTimeDesc CollectionRankRule = "BY_CREATE_TIME_DESC"
	RankByNameAsc        CollectionRankRule = "BY_NAME_ASC"
	RankByNameDesc       CollectionRankRule = "BY_NAME_DESC"
	RankByPopularityDesc CollectionRankRule = "BY_POPULARITY_DESC"
)

// RankRules lists every rank rule the server understands.
var RankRules = []CollectionRankRule{
	RankByCreateTimeAsc,
	RankByCreateTimeDesc,
	RankByNameAsc,
	RankByNameDesc,
	RankByPopularityDesc,
}

// Valid reports whether r is one of the five known rank rules. The API
// client does not call it; sending a valid rule is the caller's job.
func (r CollectionRankRule) Valid() bool {
	for _, rule := range RankRules {
		if r == rule {
			return true
		}
	}
	return false
}

type CollectionFlag string

const (
	CollectionFlagPublicCourse   CollectionFlag = "PUBLIC_COURSE"
	CollectionFlagPublicSchool   CollectionFlag = "PUBLIC_SCHOOL"
	CollectionFlagPublicSemester CollectionFlag = "PUBLIC_SEMESTER"
)

type BaseCollectionContentVo struct {
	CollectionID string      `json:"collectionId"`
	Title        string      `json:"title"`
	CreateTime   string      `json:"createTime"`
	Type         ContentType `json:"type"`
}

type PdfContent struct {
	BaseCollectionContentVo
	PdfID                string `json:"pdfId"`
	SignedURL            string `json:"signedUrl"`
	Moveable             bool   `json:"moveable"`
	Ocred                bool   `json:"ocred"`
	PageIndexed          bool   `json:"pageIndexed"`
	ModuleSummarized     bool   `json:"moduleSummarized"`
	ModuleSummaryIndexed bool   `json:"moduleSummaryIndexed"`
}

type CollectionContent struct {
	BaseCollectionContentVo
	ParentCollectionID string          `json:"parentCollectionId"`
	Edited             bool            `json:"edited"`
	Favourite          bool            `json:"favourite"`
	CollectionFlag     *CollectionFlag `json:"collectionFlag,omitempty"`
	Popularity         *float64        `json:"popularity,omitempty"`
	SignedURL          *string         `json:"signedUrl,omitempty"`
}

// CollectionContentVo is one entry of a collection listing. Type selects
// which of Collection or Pdf is set; the other one is always nil.
type CollectionContentVo struct {
	Type       ContentType
	Collection *CollectionContent
	Pdf        *PdfContent
}

func NewCollectionItem(c CollectionContent) CollectionContentVo {
	c.Type = ContentTypeCollection
	return CollectionContentVo{Type: ContentTypeCollection, Collection: &c}
}

func NewPdfItem(p PdfContent) CollectionContentVo {
	p.Type = ContentTypePdf
	return CollectionContentVo{Type: ContentTypePdf, Pdf: &p}
}

// Base returns the fields shared by both variants.
func (v CollectionContentVo) Base() BaseCollectionContentVo {
	switch v.Type {
	case ContentTypeCollection:
		if v.Collection != nil {
			return v.Collection.BaseCollectionContentVo
		}
	case ContentTypePdf:
		if v.Pdf != nil {
			return v.Pdf.BaseCollectionContentVo
		}
	}
	return BaseCollectionContentVo{Type: v.Type}
}

func (v CollectionContentVo) MarshalJSON() ([]byte, error) {
	switch v.Type {
	case ContentTypeCollection:
		if v.Collection == nil {
			return nil, fmt.Errorf("collection content item has no collection payload")
		}
		c := *v.Collection
		c.Type = ContentTypeCollection
		return json.Marshal(c)
	case ContentTypePdf:
		if v.Pdf == nil {
			return nil, fmt.Errorf("pdf content item has no pdf payload")
		}
		p := *v.Pdf
		p.Type = ContentTypePdf
		return json.Marshal(p)
	default:
		return nil, fmt.Errorf("unknown content type %q", v.Type)
	}
}

func (v *CollectionContentVo) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var head struct {
		Type ContentType `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}

	switch head.Type {
	case ContentTypeCollection:
		var c CollectionContent
		if err := json.Unmarshal(data, &c); err != nil {
			return fmt.Errorf("failed to decode collection item: %w", err)
		}
		*v = CollectionContentVo{Type: ContentTypeCollection, Collection: &c}
	case ContentTypePdf:
		var p PdfContent
		if err := json.Unmarshal(data, &p); err != nil {
			return fmt.Errorf("failed to decode pdf item: %w", err)
		}
		*v = CollectionContentVo{Type: ContentTypePdf, Pdf: &p}
	default:
		return fmt.Errorf("unknown content type %q", head.Type)
	}
	return nil
}

// Instant mirrors the server's seconds/nanos timestamp.
type Instant struct {
	Seconds *int64 `json:"seconds,omitempty"`
	Nanos   *int32 `json:"nanos,omitempty"`
}

func (i Instant) Time() time.Time {
	var sec int64
	var nsec int64
	if i.Seconds != nil {
		sec = *i.Seconds
	}
	if i.Nanos != nil {
		nsec = int64(*i.Nanos)
	}
	return time.Unix(sec, nsec).UTC()
}

type FolderCollectionContentVo struct {
	CollectionFlag *CollectionFlag `json:"collectionFlag,omitempty"`
	CollectionID   *string         `json:"collectionId,omitempty"`
	CreateTime     *Instant        `json:"createTime,omitempty"`
	Edited         *bool           `json:"edited,omitempty"`
	Favourite      *bool           `json:"favourite,omitempty"`
	Popularity     *float64        `json:"popularity,omitempty"`
	SignedURL      *string         `json:"signedUrl,omitempty"`
}
