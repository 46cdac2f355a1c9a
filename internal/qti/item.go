// Package qti moves questions in and out of IMS QTI 2.1 content packages: a
// zip holding imsmanifest.xml and one assessmentItem file per question.
package qti

import "encoding/xml"

const (
	itemNS       = "http://www.imsglobal.org/xsd/imsqti_v2p1"
	manifestNS   = "http://www.imsglobal.org/xsd/imscp_v1p1"
	itemResource = "imsqti_item_xmlv2p1"
	responseID   = "RESPONSE"
)

type assessmentItem struct {
	XMLName    xml.Name            `xml:"assessmentItem"`
	Xmlns      string              `xml:"xmlns,attr,omitempty"`
	Identifier string              `xml:"identifier,attr"`
	Title      string              `xml:"title,attr"`
	Response   responseDeclaration `xml:"responseDeclaration"`
	Body       itemBody            `xml:"itemBody"`
}

type responseDeclaration struct {
	Identifier  string   `xml:"identifier,attr"`
	Cardinality string   `xml:"cardinality,attr"` // single|multiple|ordered
	BaseType    string   `xml:"baseType,attr"`
	Correct     []string `xml:"correctResponse>value"`
}

// itemBody holds the question text as the first paragraph and, for fill in
// the blank, the sentence as the second.
type itemBody struct {
	Paragraphs []string     `xml:"p"`
	Choice     *interaction `xml:"choiceInteraction"`
	Order      *interaction `xml:"orderInteraction"`
	TextEntry  *textEntry   `xml:"textEntryInteraction"`
	Extended   *textEntry   `xml:"extendedTextInteraction"`
}

type interaction struct {
	ResponseIdentifier string         `xml:"responseIdentifier,attr"`
	MaxChoices         int            `xml:"maxChoices,attr,omitempty"`
	Shuffle            bool           `xml:"shuffle,attr"`
	Prompt             string         `xml:"prompt,omitempty"`
	Choices            []simpleChoice `xml:"simpleChoice"`
}

type simpleChoice struct {
	Identifier string `xml:"identifier,attr"`
	Text       string `xml:",chardata"`
}

type textEntry struct {
	ResponseIdentifier string `xml:"responseIdentifier,attr"`
}

type manifest struct {
	XMLName    xml.Name   `xml:"manifest"`
	Xmlns      string     `xml:"xmlns,attr,omitempty"`
	Identifier string     `xml:"identifier,attr"`
	Resources  []resource `xml:"resources>resource"`
}

type resource struct {
	Identifier string `xml:"identifier,attr"`
	Type       string `xml:"type,attr"`
	Href       string `xml:"href,attr"`
	Files      []file `xml:"file"`
}

type file struct {
	Href string `xml:"href,attr"`
}
