package rope

import "strings"

// Branch fanout and leaf capacity constants.
const (
	// minBranchChildren is the minimum children per internal node (except root).
	minBranchChildren = 4

	// maxBranchChildren is the maximum children per internal node before splitting.
	maxBranchChildren = 8

	// maxSpansPerLeaf is the maximum number of spans held by one leaf.
	maxSpansPerLeaf = 4
)

// segmentNode is one node of the rope's B+ tree. A leaf (height == 0)
// holds spans of text directly; an internal node (height > 0) holds
// child references plus a per-child summary so seeking by offset or
// line never has to descend into a child just to measure it.
type segmentNode struct {
	height  uint8
	summary TextSummary

	children       []*segmentNode
	childSummaries []TextSummary

	chunks []span
}

// newLeafNode creates an empty leaf.
func newLeafNode() *segmentNode {
	return &segmentNode{
		height: 0,
		chunks: make([]span, 0, maxSpansPerLeaf),
	}
}

// newLeafNodeWithChunks creates a leaf holding the given spans.
func newLeafNodeWithChunks(chunks []span) *segmentNode {
	n := &segmentNode{
		height: 0,
		chunks: chunks,
	}
	n.recomputeSummary()
	return n
}

// newInternalNode creates a branch over the given children. The
// caller must ensure len(children) <= maxBranchChildren.
func newInternalNode(children []*segmentNode) *segmentNode {
	if len(children) == 0 {
		return newLeafNode()
	}

	height := children[0].height + 1
	summaries := make([]TextSummary, len(children))
	var total TextSummary

	for i, child := range children {
		summaries[i] = child.summary
		total = total.Add(child.summary)
	}

	return &segmentNode{
		height:         height,
		summary:        total,
		children:       children,
		childSummaries: summaries,
	}
}

func (n *segmentNode) IsLeaf() bool {
	return n.height == 0
}

// Len returns the byte length of text in this subtree.
func (n *segmentNode) Len() ByteOffset {
	return n.summary.Bytes
}

// LineCount returns the number of lines in this subtree.
func (n *segmentNode) LineCount() uint32 {
	return n.summary.Lines + 1
}

// recomputeSummary rebuilds the cached summary from children or spans.
func (n *segmentNode) recomputeSummary() {
	if n.IsLeaf() {
		n.summary = TextSummary{Flags: FlagASCII}
		for _, chunk := range n.chunks {
			n.summary = n.summary.Add(chunk.Summary())
		}
		return
	}

	n.summary = TextSummary{Flags: FlagASCII}
	n.childSummaries = make([]TextSummary, len(n.children))
	for i, child := range n.children {
		n.childSummaries[i] = child.summary
		n.summary = n.summary.Add(child.summary)
	}
}

// clone makes a shallow copy of n: children/spans are shared, not
// deep-copied, matching the rope's copy-on-write contract.
func (n *segmentNode) clone() *segmentNode {
	if n.IsLeaf() {
		chunks := make([]span, len(n.chunks))
		copy(chunks, n.chunks)
		return &segmentNode{
			height:  0,
			summary: n.summary,
			chunks:  chunks,
		}
	}

	children := make([]*segmentNode, len(n.children))
	copy(children, n.children)
	summaries := make([]TextSummary, len(n.childSummaries))
	copy(summaries, n.childSummaries)

	return &segmentNode{
		height:         n.height,
		summary:        n.summary,
		children:       children,
		childSummaries: summaries,
	}
}

// appendTo writes every byte of this subtree's text to sb, in order.
func (n *segmentNode) appendTo(sb *strings.Builder) {
	if n.IsLeaf() {
		for _, chunk := range n.chunks {
			sb.WriteString(chunk.String())
		}
		return
	}

	for _, child := range n.children {
		child.appendTo(sb)
	}
}

// textInRange extracts text in the byte range [start, end).
func (n *segmentNode) textInRange(start, end ByteOffset) string {
	if start >= end || start >= n.Len() {
		return ""
	}
	if end > n.Len() {
		end = n.Len()
	}

	var sb strings.Builder
	sb.Grow(int(end - start))
	n.appendRange(&sb, start, end)
	return sb.String()
}

// appendRange writes the subtree's text in [start, end) to sb.
func (n *segmentNode) appendRange(sb *strings.Builder, start, end ByteOffset) {
	if start >= end {
		return
	}

	if n.IsLeaf() {
		offset := ByteOffset(0)
		for _, chunk := range n.chunks {
			chunkLen := ByteOffset(chunk.Len())
			chunkEnd := offset + chunkLen

			if chunkEnd <= start {
				offset = chunkEnd
				continue
			}
			if offset >= end {
				break
			}

			sliceStart := 0
			if start > offset {
				sliceStart = int(start - offset)
			}
			sliceEnd := chunk.Len()
			if end < chunkEnd {
				sliceEnd = int(end - offset)
			}

			sb.WriteString(chunk.String()[sliceStart:sliceEnd])
			offset = chunkEnd
		}
		return
	}

	offset := ByteOffset(0)
	for i, child := range n.children {
		childLen := n.childSummaries[i].Bytes
		childEnd := offset + childLen

		if childEnd <= start {
			offset = childEnd
			continue
		}
		if offset >= end {
			break
		}

		childStart := ByteOffset(0)
		if start > offset {
			childStart = start - offset
		}
		childEndAdj := childLen
		if end < childEnd {
			childEndAdj = end - offset
		}

		child.appendRange(sb, childStart, childEndAdj)
		offset = childEnd
	}
}

// split splits n at the given byte offset into a left subtree
// holding [0, offset) and a right subtree holding [offset, end).
func (n *segmentNode) split(offset ByteOffset) (*segmentNode, *segmentNode) {
	if offset <= 0 {
		return newLeafNode(), n.clone()
	}
	if offset >= n.Len() {
		return n.clone(), newLeafNode()
	}

	if n.IsLeaf() {
		return n.splitLeaf(offset)
	}
	return n.splitInternal(offset)
}

func (n *segmentNode) splitLeaf(offset ByteOffset) (*segmentNode, *segmentNode) {
	var leftChunks, rightChunks []span
	currentOffset := ByteOffset(0)

	for _, chunk := range n.chunks {
		chunkLen := ByteOffset(chunk.Len())

		switch {
		case currentOffset+chunkLen <= offset:
			leftChunks = append(leftChunks, chunk)
		case currentOffset >= offset:
			rightChunks = append(rightChunks, chunk)
		default:
			splitPoint := int(offset - currentOffset)
			left, right := chunk.Split(splitPoint)
			if !left.IsEmpty() {
				leftChunks = append(leftChunks, left)
			}
			if !right.IsEmpty() {
				rightChunks = append(rightChunks, right)
			}
		}
		currentOffset += chunkLen
	}

	return newLeafNodeWithChunks(leftChunks), newLeafNodeWithChunks(rightChunks)
}

func (n *segmentNode) splitInternal(offset ByteOffset) (*segmentNode, *segmentNode) {
	var leftChildren, rightChildren []*segmentNode
	currentOffset := ByteOffset(0)

	for i, child := range n.children {
		childLen := n.childSummaries[i].Bytes

		switch {
		case currentOffset+childLen <= offset:
			leftChildren = append(leftChildren, child)
		case currentOffset >= offset:
			rightChildren = append(rightChildren, child)
		default:
			splitPoint := offset - currentOffset
			leftChild, rightChild := child.split(splitPoint)
			if leftChild.Len() > 0 {
				leftChildren = append(leftChildren, leftChild)
			}
			if rightChild.Len() > 0 {
				rightChildren = append(rightChildren, rightChild)
			}
		}
		currentOffset += childLen
	}

	return buildNodeFromChildren(leftChildren), buildNodeFromChildren(rightChildren)
}

// buildNodeFromChildren assembles a (possibly multi-level) balanced
// subtree over children, splitting into additional branch levels
// whenever the list exceeds maxBranchChildren.
func buildNodeFromChildren(children []*segmentNode) *segmentNode {
	if len(children) == 0 {
		return newLeafNode()
	}
	if len(children) == 1 {
		return children[0]
	}
	if len(children) <= maxBranchChildren {
		return newInternalNode(children)
	}

	var parents []*segmentNode
	for i := 0; i < len(children); i += maxBranchChildren {
		end := i + maxBranchChildren
		if end > len(children) {
			end = len(children)
		}
		parents = append(parents, newInternalNode(children[i:end]))
	}

	return buildNodeFromChildren(parents)
}

// concat joins left and right into one subtree.
func concat(left, right *segmentNode) *segmentNode {
	if left == nil || left.Len() == 0 {
		if right == nil {
			return newLeafNode()
		}
		return right
	}
	if right == nil || right.Len() == 0 {
		return left
	}

	if left.IsLeaf() && right.IsLeaf() {
		return concatLeaves(left, right)
	}

	// Wrap the shorter side in a height-1 branch until both sides
	// line up, then merge at that shared level.
	for left.height < right.height {
		left = newInternalNode([]*segmentNode{left})
	}
	for right.height < left.height {
		right = newInternalNode([]*segmentNode{right})
	}

	return mergeNodes(left, right)
}

func concatLeaves(left, right *segmentNode) *segmentNode {
	totalChunks := len(left.chunks) + len(right.chunks)

	if totalChunks <= maxSpansPerLeaf {
		chunks := make([]span, 0, totalChunks)
		chunks = append(chunks, left.chunks...)
		chunks = append(chunks, right.chunks...)
		return newLeafNodeWithChunks(chunks)
	}

	return newInternalNode([]*segmentNode{left.clone(), right.clone()})
}

// mergeNodes merges two nodes known to share a height.
func mergeNodes(left, right *segmentNode) *segmentNode {
	if left.IsLeaf() {
		return concatLeaves(left, right)
	}

	allChildren := make([]*segmentNode, 0, len(left.children)+len(right.children))
	allChildren = append(allChildren, left.children...)
	allChildren = append(allChildren, right.children...)

	if len(allChildren) <= maxBranchChildren {
		return newInternalNode(allChildren)
	}

	return buildNodeFromChildren(allChildren)
}

// findChildByOffset returns the index of the child containing offset
// and the offset translated into that child's own coordinate space.
func (n *segmentNode) findChildByOffset(offset ByteOffset) (int, ByteOffset) {
	if n.IsLeaf() {
		return -1, 0
	}

	currentOffset := ByteOffset(0)
	for i, summary := range n.childSummaries {
		if currentOffset+summary.Bytes > offset {
			return i, offset - currentOffset
		}
		currentOffset += summary.Bytes
	}

	lastIdx := len(n.children) - 1
	return lastIdx, offset - (n.summary.Bytes - n.childSummaries[lastIdx].Bytes)
}

// findChildByLine returns the index of the child containing line and
// the line number translated into that child's own coordinate space.
func (n *segmentNode) findChildByLine(line uint32) (int, uint32) {
	if n.IsLeaf() {
		return -1, 0
	}

	currentLine := uint32(0)
	for i, summary := range n.childSummaries {
		if currentLine+summary.Lines >= line {
			return i, line - currentLine
		}
		currentLine += summary.Lines
	}

	lastIdx := len(n.children) - 1
	lastChildStartLine := n.summary.Lines - n.childSummaries[lastIdx].Lines
	return lastIdx, line - lastChildStartLine
}
