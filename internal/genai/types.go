package genai

// Blob carries an inline binary payload, base64-encoded without a data URI
// prefix, together with its MIME type.
type Blob struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

// Part is one element of model input. Exactly one of Text or InlineData is
// set; a part with both empty is invalid.
type Part struct {
	Text       string `json:"text,omitempty"`
	InlineData *Blob  `json:"inlineData,omitempty"`
}

// TextPart builds a text part.
func TextPart(text string) Part {
	return Part{Text: text}
}

// BinaryPart builds an inline binary part from a stripped base64 payload.
func BinaryPart(data, mimeType string) Part {
	return Part{InlineData: &Blob{MIMEType: mimeType, Data: data}}
}

// IsBinary reports whether the part carries an inline payload.
func (p Part) IsBinary() bool {
	return p.InlineData != nil
}

// GenerateRequest describes one generation call against a named model.
type GenerateRequest struct {
	Model             string
	Parts             []Part
	SystemInstruction string
	Temperature       float64
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

type generationConfig struct {
	Temperature float64 `json:"temperature"`
}

type generateContentRequest struct {
	Contents          []content         `json:"contents"`
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}
