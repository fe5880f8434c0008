// Package artifact reads and writes cropfit model files.
//
// A model file bundles everything the suitability engine needs at process
// start: the training reference set, the crop names, the fitted scaler
// parameters and the classifier's neighbor count. It replaces the separate
// pickled model, scaler and name files produced by the training pipeline.
//
// # File Layout
//
//	offset  size  field
//	0       4     magic "CFIT"
//	4       1     version (1)
//	5       1     compression (format.CompressionType)
//	6       2     reserved, zero
//	8       4     stored payload length (little-endian uint32)
//	12      4     raw payload length (little-endian uint32)
//	16      8     xxHash64 of the raw payload
//	24      ...   payload: msgpack-encoded Model, compressed
//
// # Usage
//
//	if err := artifact.SaveFile("crops.cfit", model,
//	    artifact.WithCompression(format.CompressionZstd)); err != nil {
//	    return err
//	}
//
//	model, info, err := artifact.LoadFile("crops.cfit")
package artifact
