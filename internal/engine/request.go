package engine

// Input is one user supplied file.
type Input struct {
	Name string
	Data []byte
}

// Request is one user action. The concrete types below are the only
// implementations.
type Request interface {
	request()
}

type MergeRequest struct {
	Inputs []Input
}

type SplitRequest struct {
	Input Input
}

// DeleteRequest removes the pages named by Pages, a page spec.
type DeleteRequest struct {
	Input Input
	Pages string
}

// ReorderRequest outputs the pages named by Order in that order.
type ReorderRequest struct {
	Input Input
	Order string
}

type RotateRequest struct {
	Input   Input
	Degrees int
}

type WatermarkRequest struct {
	Input     Input
	Watermark Watermark
}

// BackgroundRequest names one of BackgroundColors.
type BackgroundRequest struct {
	Input   Input
	Color   string
	Opacity float64
}

type ImagesToPDFRequest struct {
	Inputs []Input
}

// TextToPDFRequest renders Text.Body on one page. A positive Limit truncates
// the body to that many characters.
type TextToPDFRequest struct {
	Text   TextBlock
	Limit  int
	Output string
}

type ExtractTextRequest struct {
	Input Input
}

type ToWordRequest struct {
	Input Input
}

type CompressRequest struct {
	Input Input
}

type InfoRequest struct {
	Input Input
}

type ProtectRequest struct {
	Input    Input
	Password string
}

type UnlockRequest struct {
	Input    Input
	Password string
}

func (MergeRequest) request()       {}
func (SplitRequest) request()       {}
func (DeleteRequest) request()      {}
func (ReorderRequest) request()     {}
func (RotateRequest) request()      {}
func (WatermarkRequest) request()   {}
func (BackgroundRequest) request()  {}
func (ImagesToPDFRequest) request() {}
func (TextToPDFRequest) request()   {}
func (ExtractTextRequest) request() {}
func (ToWordRequest) request()      {}
func (CompressRequest) request()    {}
func (InfoRequest) request()        {}
func (ProtectRequest) request()     {}
func (UnlockRequest) request()      {}

// Output is one produced file.
type Output struct {
	Name string `json:"name"`
	MIME string `json:"mime"`
	Data []byte `json:"-"`
}

// Result is what a Request produced.
type Result struct {
	Outputs []Output `json:"outputs,omitempty"`
	Info    *Info    `json:"info,omitempty"`
	Notice  string   `json:"notice,omitempty"`
}

const (
	MIMEPDF  = "application/pdf"
	MIMEText = "text/plain"
	MIMEWord = "application/msword"
)
