package stablehlo

import "github.com/pkg/errors"

// ProposalConfig configures the Proposal operation.
type ProposalConfig struct {
	// BaseSize is the size of the base anchor, in pixels of the original image.
	BaseSize float32

	// HeightStride and WidthStride are the ratios from the size of the original image to the size of the feature map.
	HeightStride, WidthStride float32

	// PreNMSTopN is the maximum number of boxes going into the NMS, after sorting by score.
	// Non-positive values mean unlimited.
	PreNMSTopN int

	// PostNMSTopN is the maximum number of boxes returned by the NMS. Non-positive values mean unlimited.
	PostNMSTopN int

	// NMSThreshold is the IoU threshold for the hard NMS.
	NMSThreshold float32

	// MinSize of the boxes: boxes with height or width lower than MinSize are filtered out.
	MinSize float32

	// Ratios (height/width) and Scales (relative to BaseSize) of the anchors.
	Ratios, Scales []float32

	// ClipBeforeNMS and ClipAfterNMS clip the boxes to the image size before/after the NMS.
	ClipBeforeNMS, ClipAfterNMS bool

	// Normalize the box coordinates to [0, 1] by the image size.
	Normalize bool

	// BoxCoordinateScale and BoxSizeScale divide the coordinate (dx, dy) and size (dw, dh) deltas respectively.
	BoxCoordinateScale, BoxSizeScale float32

	// SourceLayout is informative: the layout ("NHWC" or "NCHW") of the tensors in the source model.
	SourceLayout string
}

// Validate checks that the configuration values are in range.
func (c ProposalConfig) Validate() error {
	if c.HeightStride <= 0 || c.WidthStride <= 0 {
		return errors.Errorf("Proposal strides must be positive, got height=%g, width=%g", c.HeightStride, c.WidthStride)
	}
	if c.NMSThreshold <= 0 || c.NMSThreshold > 1 {
		return errors.Errorf("Proposal NMS threshold must be in (0, 1], got %g", c.NMSThreshold)
	}
	if c.MinSize < 0 {
		return errors.Errorf("Proposal minimum box size must be non-negative, got %g", c.MinSize)
	}
	if len(c.Ratios) != len(c.Scales) {
		return errors.Errorf("Proposal requires one scale per ratio, got %d ratios and %d scales", len(c.Ratios), len(c.Scales))
	}
	if c.BoxCoordinateScale <= 0 || c.BoxSizeScale <= 0 {
		return errors.Errorf("Proposal box scales must be positive, got coordinate=%g, size=%g", c.BoxCoordinateScale, c.BoxSizeScale)
	}
	return nil
}

// attributes returns the configuration as statement attributes.
func (c ProposalConfig) attributes() map[string]any {
	return map[string]any{
		"base_size":            c.BaseSize,
		"feat_stride_height":   c.HeightStride,
		"feat_stride_width":    c.WidthStride,
		"pre_nms_topn":         c.PreNMSTopN,
		"post_nms_topn":        c.PostNMSTopN,
		"nms_thresh":           c.NMSThreshold,
		"min_size":             c.MinSize,
		"ratio":                append([]float32{}, c.Ratios...),
		"scale":                append([]float32{}, c.Scales...),
		"clip_before_nms":      c.ClipBeforeNMS,
		"clip_after_nms":       c.ClipAfterNMS,
		"normalize":            c.Normalize,
		"box_coordinate_scale": c.BoxCoordinateScale,
		"box_size_scale":       c.BoxSizeScale,
		"source_layout":        c.SourceLayout,
	}
}

// ProposalConfigFromAttributes reads back the configuration of a Proposal statement.
func ProposalConfigFromAttributes(attributes map[string]any) (config ProposalConfig, err error) {
	for _, err = range []error{
		readAttribute(attributes, "base_size", &config.BaseSize),
		readAttribute(attributes, "feat_stride_height", &config.HeightStride),
		readAttribute(attributes, "feat_stride_width", &config.WidthStride),
		readAttribute(attributes, "pre_nms_topn", &config.PreNMSTopN),
		readAttribute(attributes, "post_nms_topn", &config.PostNMSTopN),
		readAttribute(attributes, "nms_thresh", &config.NMSThreshold),
		readAttribute(attributes, "min_size", &config.MinSize),
		readAttribute(attributes, "ratio", &config.Ratios),
		readAttribute(attributes, "scale", &config.Scales),
		readAttribute(attributes, "clip_before_nms", &config.ClipBeforeNMS),
		readAttribute(attributes, "clip_after_nms", &config.ClipAfterNMS),
		readAttribute(attributes, "normalize", &config.Normalize),
		readAttribute(attributes, "box_coordinate_scale", &config.BoxCoordinateScale),
		readAttribute(attributes, "box_size_scale", &config.BoxSizeScale),
		readAttribute(attributes, "source_layout", &config.SourceLayout),
	} {
		if err != nil {
			return ProposalConfig{}, err
		}
	}
	return config, nil
}

// readAttribute sets *value to attributes[key], which must be present and of type T.
func readAttribute[T any](attributes map[string]any, key string, value *T) error {
	attr, found := attributes[key]
	if !found {
		return errors.Errorf("Proposal attribute %q missing", key)
	}
	v, ok := attr.(T)
	if !ok {
		return errors.Errorf("Proposal attribute %q must be a %T, got %T", key, v, attr)
	}
	*value = v
	return nil
}
