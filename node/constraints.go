package node

import "slices"

var (
	blockChildren = []Type{
		TypeBlockQuote, TypeList, TypeCodeBlock, TypeHTMLBlock,
		TypeCustomBlock, TypeParagraph, TypeHeading, TypeThematicBreak,
	}
	inlineChildren = []Type{
		TypeText, TypeSoftBreak, TypeLineBreak, TypeCode, TypeHTMLInline,
		TypeCustomInline, TypeEmph, TypeStrong, TypeLink, TypeImage,
	}
	anyChild = Types[1:]

	childTypes = map[Type][]Type{
		TypeDocument:     blockChildren,
		TypeBlockQuote:   blockChildren,
		TypeItem:         blockChildren,
		TypeList:         {TypeItem},
		TypeCustomBlock:  anyChild,
		TypeParagraph:    inlineChildren,
		TypeHeading:      inlineChildren,
		TypeEmph:         inlineChildren,
		TypeStrong:       inlineChildren,
		TypeLink:         inlineChildren,
		TypeImage:        inlineChildren,
		TypeCustomInline: inlineChildren,
	}
)

// ChildTypes returns the kinds parent may contain. Leaf kinds contain
// nothing.
func ChildTypes(parent Type) []Type {
	return slices.Clone(childTypes[parent])
}

// CanContain reports whether a node of kind parent may have a child of
// kind child. Cycles are not considered.
func CanContain(parent, child Type) bool {
	return slices.Contains(childTypes[parent], child)
}
