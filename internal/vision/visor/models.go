package visor

// DetectFaceRequest for POST /face
type DetectFaceRequest struct {
	Img string `json:"img"` // base64 encoded frame
}

// DetectFaceResponse from POST /face
type DetectFaceResponse struct {
	Found bool  `json:"found"`
	Box   []int `json:"box,omitempty"` // [x1, y1, x2, y2] in frame pixels
}

// DetectMarksRequest for POST /marks
type DetectMarksRequest struct {
	Img string `json:"img"` // base64 encoded face crop
}

// DetectMarksResponse from POST /marks
type DetectMarksResponse struct {
	Marks [][]float64 `json:"marks"` // 68 [x, y] pairs normalized to the crop
}

// SolvePoseRequest for POST /pose
type SolvePoseRequest struct {
	Width  int         `json:"width"`  // frame width for the camera matrix
	Height int         `json:"height"` // frame height for the camera matrix
	Marks  [][]float64 `json:"marks"`  // 68 [x, y] pairs in frame pixels
}

// SolvePoseResponse from POST /pose
type SolvePoseResponse struct {
	Rotation    []float64 `json:"rotation"`    // [pitch, yaw, roll] in radians
	Translation []float64 `json:"translation"` // [tx, ty, tz]
}

// CountPeopleRequest for POST /people
type CountPeopleRequest struct {
	Img       string  `json:"img"`
	Threshold float64 `json:"threshold"` // minimum detection score
}

// CountPeopleResponse from POST /people
type CountPeopleResponse struct {
	People int `json:"people"`
}
