package gores

// RawDataContainer owns the bytes of one loaded resource until it is
// handed back through ResourceProvider.UnloadRawDataContainer or Release.
type RawDataContainer struct {
	Data []byte
	Size int64
}

func newRawDataContainer(data []byte) *RawDataContainer {
	return &RawDataContainer{
		Data: data,
		Size: int64(len(data)),
	}
}

func (r *RawDataContainer) Bytes() []byte {
	if r == nil {
		return nil
	}
	return r.Data
}

func (r *RawDataContainer) Loaded() bool {
	return r != nil && r.Data != nil
}

// Release drops the buffer and resets the container. Calling it on a nil,
// empty or already released container does nothing.
func (r *RawDataContainer) Release() {
	if r == nil {
		return
	}
	r.Data = nil
	r.Size = 0
}
