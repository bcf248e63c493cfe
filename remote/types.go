package remote

type EmptyResponse struct {
}

type SetRotationRequest struct {
	Rotation uint8
}

type FillRequest struct {
	X, Y          uint16
	Width, Height uint16
	Color         uint16
}

type DrawBitmapRequest struct {
	Width, Height uint16
	X, Y          uint16
	Foreground    uint16
	Background    uint16
	Bits          []byte
}

type DrawImageRequest struct {
	X, Y  uint16
	Image []byte
}

type StateResponse struct {
	Width    uint16
	Height   uint16
	Rotation uint8
}
