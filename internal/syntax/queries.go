package syntax

// Highlight queries, one per registered grammar. These are intentionally
// modest — they cover the token kinds TokenKind names, grounded in the
// query style of twig.go's functionLikeQuery/variableLikeQuery/
// assignmentQuery rather than attempting an exhaustive
// grammar-author-grade highlights.scm.
const phpHighlightsQuery = `
(comment) @comment
(string) @string
(integer) @number
(float) @number
[
  "function" "class" "interface" "trait" "namespace" "use"
  "public" "private" "protected" "static" "return" "if" "else"
  "foreach" "for" "while" "new" "extends" "implements"
] @keyword
(function_definition name: (name) @function)
(method_declaration name: (name) @function)
(class_declaration name: (name) @type)
(variable_name) @variable
(property_element (variable_name) @property)
(simple_parameter name: (variable_name) @parameter)
["+" "-" "*" "/" "." "=" "==" "===" "=>" "->"] @operator
`

const twigHighlightsQuery = `
(comment) @comment
(string) @string
(number) @number
["if" "else" "endif" "for" "endfor" "set" "block" "endblock" "extends" "include"] @keyword
(variable) @variable
(function_identifier) @function
`

const twigInjectionsQuery = `
(output
  (filter
    (function_identifier) @injection.language (#eq? @injection.language "raw"))
  (string) @injection.content)
`

const xmlHighlightsQuery = `
(comment) @comment
(AttValue) @string
(Name) @property
`
