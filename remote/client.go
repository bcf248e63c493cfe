package remote

import (
	"bytes"
	"image"
	"io"
	"net/rpc"

	"github.com/disintegration/imaging"

	"github.com/BeatGlow/ili9341"
	"github.com/BeatGlow/ili9341/pixel"
)

var _ Display = (*Client)(nil)

// Dial connects to a Proxy listening on addr.
func Dial(addr string) (*Client, error) {
	client, err := rpc.DialHTTP("tcp", addr)
	if err != nil {
		return nil, err
	}

	return &Client{rpc: client}, nil
}

// NewClient speaks to a Service on an established connection.
func NewClient(conn io.ReadWriteCloser) *Client {
	return &Client{rpc: rpc.NewClient(conn)}
}

// Client is a Display backed by a remote Service.
type Client struct {
	rpc *rpc.Client
}

func (c *Client) Close() error {
	return c.rpc.Close()
}

func (c *Client) Show(show bool) error {
	if show {
		return c.rpc.Call("Service.Command", "show", nil)
	}
	return c.rpc.Call("Service.Command", "hide", nil)
}

func (c *Client) SetInverted(invert bool) error {
	if invert {
		return c.rpc.Call("Service.Command", "invert", nil)
	}
	return c.rpc.Call("Service.Command", "normal", nil)
}

func (c *Client) SetRotation(r ili9341.Rotation) error {
	return c.rpc.Call("Service.SetRotation", SetRotationRequest{Rotation: uint8(r)}, nil)
}

func (c *Client) FillScreen(color pixel.RGB565) error {
	return c.rpc.Call("Service.FillScreen", FillRequest{Color: uint16(color)}, nil)
}

func (c *Client) FillRectangle(x, y, w, h uint16, color pixel.RGB565) error {
	return c.rpc.Call("Service.FillRectangle", FillRequest{
		X:      x,
		Y:      y,
		Width:  w,
		Height: h,
		Color:  uint16(color),
	}, nil)
}

// DrawBitmap reads width*height/8 bytes from src and sends them in one call.
func (c *Client) DrawBitmap(width, height, x, y uint16, fg, bg pixel.RGB565, src ili9341.BitSource) error {
	bits := make([]byte, int(width)*int(height)/8)
	for i := range bits {
		bits[i] = src.Next()
	}

	return c.rpc.Call("Service.DrawBitmap", &DrawBitmapRequest{
		Width:      width,
		Height:     height,
		X:          x,
		Y:          y,
		Foreground: uint16(fg),
		Background: uint16(bg),
		Bits:       bits,
	}, nil)
}

// DrawImage sends img PNG encoded.
func (c *Client) DrawImage(x, y uint16, img image.Image) error {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return err
	}

	return c.rpc.Call("Service.DrawImage", &DrawImageRequest{
		X:     x,
		Y:     y,
		Image: buf.Bytes(),
	}, nil)
}

// State is the geometry of the remote display.
func (c *Client) State() (ili9341.State, error) {
	var resp StateResponse
	if err := c.rpc.Call("Service.State", EmptyResponse{}, &resp); err != nil {
		return ili9341.State{}, err
	}
	return ili9341.State{
		Width:    resp.Width,
		Height:   resp.Height,
		Rotation: ili9341.Rotation(resp.Rotation),
	}, nil
}
