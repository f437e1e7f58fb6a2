// Package gbm defines the buffer manager contract shared by allocation
// backends: devices that create, import and export pixel buffers, the
// descriptor a backend hands to the loader, and the error taxonomy every
// backend reports through.
//
// Backends register themselves from init, the way database/sql drivers
// do, and are opened through CreateDevice:
//
//	import _ "github.com/NeowayLabs/gbm/dumb"
//
//	dev, err := gbm.CreateDevice(int(card.Fd()), "dumb", nil)
//	if err != nil {
//		return err
//	}
//	defer dev.Destroy()
//
// Devices and buffers are not safe for concurrent use; callers serialize
// access to each of them.
package gbm
