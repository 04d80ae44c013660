package translator

import (
	"github.com/chewxy/math32"
	"github.com/gomlx/nnhal/dtypes"
	"github.com/gomlx/nnhal/model"
	"github.com/gomlx/nnhal/stablehlo"
	"github.com/x448/float16"
)

// Input slots of GENERATE_PROPOSALS.
const (
	proposalsScores = iota
	proposalsDeltas
	proposalsAnchors
	proposalsImageInfo
	proposalsHeightStride
	proposalsWidthStride
	proposalsPreNMSTopN
	proposalsPostNMSTopN
	proposalsIoUThreshold
	proposalsMinSize
	proposalsUseNCHW
	proposalsNumInputs
)

// Output slots of GENERATE_PROPOSALS.
const (
	proposalsOutputScores = iota
	proposalsOutputRois
	proposalsOutputBatchSplit
	proposalsNumOutputs
)

// generateProposals generates bounding box proposals from per-anchor scores and box deltas, followed by NMS.
//
// Inputs:
//
//   - 0: scores [batch, height, width, numAnchors] (NHWC) or [batch, numAnchors, height, width] (NCHW).
//   - 1: box deltas [batch, height, width, 4*numAnchors] (NHWC) or [batch, 4*numAnchors, height, width] (NCHW).
//   - 2: anchors [numAnchors, 4], with format [x1, y1, x2, y2].
//   - 3: image info [batch, 2], with format [height, width].
//   - 4, 5: height and width strides, from the original image to the feature map.
//   - 6, 7: maximum number of boxes before and after NMS, non-positive for unlimited.
//   - 8: IoU threshold of the NMS.
//   - 9: minimum height and width of the boxes.
//   - 10: layout of inputs 0 and 1, true for NCHW.
//
// Outputs: 0 scores [numRois], 1 rois [numRois, 4], 2 batch split [numRois] with the batch index of each roi.
//
// The base anchor size is sqrt(heightStride*widthStride). For constant anchors, each anchor's ratio is
// height/width and its scale is sqrt(width*height)/baseSize; non-constant anchors leave both lists empty.
type generateProposals struct {
	*operationBase
}

func newGenerateProposals(base *operationBase) operator { return &generateProposals{base} }

// scalarType returns the scalar operand type matching a float tensor type.
func scalarType(tensorType model.OperandType) model.OperandType {
	if tensorType == model.TensorFloat16 {
		return model.Float16
	}
	return model.Float32
}

func (op *generateProposals) validate() error {
	if err := op.checkArity(proposalsNumInputs, proposalsNumInputs, proposalsNumOutputs); err != nil {
		return err
	}
	if err := op.checkInputType(proposalsScores, model.TensorFloat32, model.TensorFloat16); err != nil {
		return err
	}
	scores, err := op.inputOperand(proposalsScores)
	if err != nil {
		return err
	}
	floatType := scores.Type
	for _, slot := range []int{proposalsDeltas, proposalsAnchors, proposalsImageInfo} {
		if err := op.checkInputType(slot, floatType); err != nil {
			return err
		}
	}
	for _, slot := range []int{proposalsHeightStride, proposalsWidthStride, proposalsIoUThreshold, proposalsMinSize} {
		if err := op.checkInputType(slot, scalarType(floatType)); err != nil {
			return err
		}
	}
	for _, slot := range []int{proposalsPreNMSTopN, proposalsPostNMSTopN} {
		if err := op.checkInputType(slot, model.Int32); err != nil {
			return err
		}
	}
	if err := op.checkInputType(proposalsUseNCHW, model.Bool); err != nil {
		return err
	}
	for slot, rank := range []int{4, 4, 2, 2} {
		if err := op.checkInputRankEqual(slot, rank); err != nil {
			return err
		}
	}
	for _, slot := range []int{proposalsOutputScores, proposalsOutputRois} {
		if err := op.checkOutputType(slot, floatType); err != nil {
			return err
		}
	}
	if err := op.checkOutputType(proposalsOutputBatchSplit, model.TensorInt32); err != nil {
		return err
	}

	config, layout, err := op.config()
	if err != nil {
		return invalid(err)
	}
	if err := config.Validate(); err != nil {
		return invalid(err)
	}

	// Dimensions, when known.
	deltas, err := op.inputOperand(proposalsDeltas)
	if err != nil {
		return err
	}
	anchors, err := op.inputOperand(proposalsAnchors)
	if err != nil {
		return err
	}
	if anchors.Dimensions[1] != 4 {
		return invalidf("%s requires anchors shaped [numAnchors, 4], got %v", op.op.Type, anchors.Dimensions)
	}
	channelsAxis, heightAxis, widthAxis := 3, 1, 2
	if layout == NCHW {
		channelsAxis, heightAxis, widthAxis = 1, 2, 3
	}
	numAnchors := anchors.Dimensions[0]
	if numAnchors > 0 {
		if dim := scores.Dimensions[channelsAxis]; dim > 0 && dim != numAnchors {
			return invalidf("%s scores with %d channels for %d anchors (layout %s)", op.op.Type, dim, numAnchors, layout)
		}
		if dim := deltas.Dimensions[channelsAxis]; dim > 0 && dim != 4*numAnchors {
			return invalidf("%s box deltas with %d channels for %d anchors, %d expected (layout %s)",
				op.op.Type, dim, numAnchors, 4*numAnchors, layout)
		}
	}
	for _, axis := range []int{0, heightAxis, widthAxis} {
		scoresDim, deltasDim := scores.Dimensions[axis], deltas.Dimensions[axis]
		if scoresDim > 0 && deltasDim > 0 && scoresDim != deltasDim {
			return invalidf("%s scores %v and box deltas %v differ on axis %d (layout %s)",
				op.op.Type, scores.Dimensions, deltas.Dimensions, axis, layout)
		}
	}
	imageInfo, err := op.inputOperand(proposalsImageInfo)
	if err != nil {
		return err
	}
	batchSize := scores.Dimensions[0]
	if batchSize <= 0 {
		batchSize = deltas.Dimensions[0]
	}
	if dim := imageInfo.Dimensions[0]; (dim > 0 && batchSize > 0 && dim != batchSize) || imageInfo.Dimensions[1] != 2 {
		return invalidf("%s requires image info shaped [%d, 2], got %v", op.op.Type, batchSize, imageInfo.Dimensions)
	}

	// Declared number of rois, when it can be derived from the inputs.
	height, width := scores.Dimensions[heightAxis], scores.Dimensions[widthAxis]
	if batchSize <= 0 || numAnchors <= 0 || height <= 0 || width <= 0 {
		return nil
	}
	numProposals := numAnchors * height * width
	if config.PreNMSTopN > 0 {
		numProposals = min(numProposals, config.PreNMSTopN)
	}
	if config.PostNMSTopN > 0 {
		numProposals = min(numProposals, config.PostNMSTopN)
	}
	numRois := batchSize * numProposals
	for slot, want := range [][]int{{numRois}, {numRois, 4}, {numRois}} {
		output, err := op.outputOperand(slot)
		if err != nil {
			return err
		}
		if !dimensionsMatch(output.Dimensions, want) {
			return invalidf("%s output #%d declared as %v, but it generates %v (%d rois for a batch of %d)",
				op.op.Type, slot, output.Dimensions, want, numRois, batchSize)
		}
	}
	return nil
}

// dimensionsMatch reports whether the declared dimensions are compatible with the wanted ones: an empty
// declaration or non-positive dimensions are unknown and match anything.
func dimensionsMatch(declared, want []int) bool {
	if len(declared) == 0 {
		return true
	}
	if len(declared) != len(want) {
		return false
	}
	for axis, dim := range declared {
		if dim > 0 && dim != want[axis] {
			return false
		}
	}
	return true
}

// config reads the configuration of the proposal primitive from the operation inputs, and the layout of
// the spatial inputs.
func (op *generateProposals) config() (config stablehlo.ProposalConfig, layout Layout, err error) {
	var useNCHW bool
	if useNCHW, err = op.parseBool(proposalsUseNCHW); err != nil {
		return
	}
	layout = LayoutFromFlag(useNCHW)
	config = stablehlo.ProposalConfig{
		ClipBeforeNMS:      true,
		ClipAfterNMS:       false,
		Normalize:          false,
		BoxCoordinateScale: 1,
		BoxSizeScale:       1,
		SourceLayout:       layout.String(),
	}
	if config.HeightStride, err = op.parseFloat(proposalsHeightStride); err != nil {
		return
	}
	if config.WidthStride, err = op.parseFloat(proposalsWidthStride); err != nil {
		return
	}
	var preNMSTopN, postNMSTopN int32
	if preNMSTopN, err = op.parseInt32(proposalsPreNMSTopN); err != nil {
		return
	}
	if postNMSTopN, err = op.parseInt32(proposalsPostNMSTopN); err != nil {
		return
	}
	config.PreNMSTopN, config.PostNMSTopN = int(preNMSTopN), int(postNMSTopN)
	if config.NMSThreshold, err = op.parseFloat(proposalsIoUThreshold); err != nil {
		return
	}
	if config.MinSize, err = op.parseFloat(proposalsMinSize); err != nil {
		return
	}
	config.BaseSize = math32.Sqrt(config.HeightStride * config.WidthStride)
	config.Ratios, config.Scales, err = op.anchorRatiosAndScales(config.BaseSize)
	return
}

// anchorRatiosAndScales derives the ratio (height/width) and scale (relative to baseSize) of each anchor,
// if the anchors are constant. Otherwise, it returns empty lists.
func (op *generateProposals) anchorRatiosAndScales(baseSize float32) (ratios, scales []float32, err error) {
	operandIndex, err := op.model.OperationInput(op.index, proposalsAnchors)
	if err != nil {
		return nil, nil, err
	}
	operand, err := op.model.Operand(operandIndex)
	if err != nil {
		return nil, nil, err
	}
	if !operand.IsConstant() {
		return []float32{}, []float32{}, nil
	}
	var anchors []float32
	if operand.Type == model.TensorFloat16 {
		var halves []float16.Float16
		if halves, err = model.ConstantVector[float16.Float16](op.model, operandIndex); err != nil {
			return nil, nil, err
		}
		anchors = make([]float32, len(halves))
		for i, v := range halves {
			anchors[i] = v.Float32()
		}
	} else if anchors, err = model.ConstantVector[float32](op.model, operandIndex); err != nil {
		return nil, nil, err
	}

	numAnchors := len(anchors) / 4
	ratios, scales = make([]float32, numAnchors), make([]float32, numAnchors)
	for i := range numAnchors {
		x1, y1, x2, y2 := anchors[4*i], anchors[4*i+1], anchors[4*i+2], anchors[4*i+3]
		width, height := x2-x1, y2-y1
		if width <= 0 || height <= 0 {
			return nil, nil, invalidf("anchor #%d [%g, %g, %g, %g] is empty", i, x1, y1, x2, y2)
		}
		ratios[i] = height / width
		scales[i] = math32.Sqrt(width*height) / baseSize
	}
	return ratios, scales, nil
}

func (op *generateProposals) createNode() (*stablehlo.Value, error) {
	config, layout, err := op.config()
	if err != nil {
		return nil, err
	}

	// The spatial inputs are converted to the NCHW layout of the primitive.
	inputs := make([]*stablehlo.Value, 4)
	for slot := range inputs {
		if inputs[slot], err = op.inputNode(slot); err != nil {
			return nil, err
		}
	}
	for _, slot := range []int{proposalsScores, proposalsDeltas} {
		if inputs[slot], err = ToLayout(inputs[slot], layout, NCHW); err != nil {
			return nil, err
		}
	}
	rois, roiScores, err := stablehlo.Proposal(inputs[0], inputs[1], inputs[2], inputs[3], config)
	if err != nil {
		return nil, err
	}
	batchSize, numProposals := rois.Shape().Dimensions[0], rois.Shape().Dimensions[2]
	numRois := batchSize * numProposals

	// And the outputs converted back to the source layout.
	if rois, err = ToLayout(rois, NCHW, layout); err != nil {
		return nil, err
	}
	if roiScores, err = ToLayout(roiScores, NCHW, layout); err != nil {
		return nil, err
	}

	// Flatten to [numRois] and [numRois, 4]: roiScores has a single channel, so its order is the same in
	// both layouts, while the rois need their coordinates in the last axis.
	if roiScores, err = stablehlo.Reshape(roiScores, numRois); err != nil {
		return nil, err
	}
	if rois, err = ToLayout(rois, layout, NHWC); err != nil {
		return nil, err
	}
	if rois, err = stablehlo.Reshape(rois, numRois, 4); err != nil {
		return nil, err
	}

	// Each image contributes numProposals rois.
	batchSplitValues := make([]int32, numRois)
	for i := range batchSplitValues {
		batchSplitValues[i] = int32(i / numProposals)
	}
	batchSplit, err := MakeConstant(op.fn, dtypes.Int32, []int{numRois}, batchSplitValues)
	if err != nil {
		return nil, err
	}

	if err := op.registerOutput(proposalsOutputScores, roiScores); err != nil {
		return nil, err
	}
	if err := op.registerOutput(proposalsOutputRois, rois); err != nil {
		return nil, err
	}
	if err := op.registerOutput(proposalsOutputBatchSplit, batchSplit); err != nil {
		return nil, err
	}
	return roiScores, nil
}
