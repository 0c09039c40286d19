package cppast

// Node kind constants, named after tree-sitter-cpp's grammar productions.
// The extractor's classifier (internal/extractor/classify.go) switches on
// these; this package only names them so the vocabulary is shared and
// typo-checked by the compiler.
const (
	KindTranslationUnit     = "translation_unit"
	KindFunctionDefinition  = "function_definition"
	KindDeclaration         = "declaration"
	KindFieldDeclaration    = "field_declaration"
	KindFunctionDeclarator  = "function_declarator"
	KindParameterList       = "parameter_list"
	KindParameterDecl       = "parameter_declaration"
	KindOptionalParamDecl   = "optional_parameter_declaration"
	KindVariadicParam       = "variadic_parameter"
	KindCompoundStatement   = "compound_statement"
	KindInitDeclarator      = "init_declarator"
	KindExpressionStatement = "expression_statement"
	KindCallExpression      = "call_expression"
	KindAssignmentExpr      = "assignment_expression"
	KindBinaryExpression    = "binary_expression"
	KindLambdaExpression    = "lambda_expression"
	KindIdentifier          = "identifier"
	KindFieldIdentifier     = "field_identifier"
	KindQualifiedIdentifier = "qualified_identifier"
	KindFieldExpression     = "field_expression"
	KindParenthesizedExpr   = "parenthesized_expression"
	KindArgumentList        = "argument_list"
	KindAttributeSpecifier  = "attribute_specifier"
	KindAttributeDecl       = "attribute_declaration"
	KindGnuAttribute        = "attribute"
	KindClassSpecifier      = "class_specifier"
	KindStructSpecifier     = "struct_specifier"
	KindFieldDeclarationList = "field_declaration_list"
	KindTemplateDeclaration = "template_declaration"
	KindEnumSpecifier       = "enum_specifier"
	KindTypeDefinition      = "type_definition"
	KindAliasDeclaration    = "alias_declaration"
	KindUsingDeclaration    = "using_declaration"
	KindFunctionDeclaration = "function_declaration" // prototype-only declaration inside a `declaration` node
	KindAbstractFunctionDeclarator = "abstract_function_declarator"
	KindDestructorName      = "destructor_name"
	KindOperatorName        = "operator_name"
	KindFieldInitializerList = "field_initializer_list"
	KindCompoundLiteralExpr = "compound_literal_expression"
	KindNumberLiteral       = "number_literal"
	KindStringLiteral       = "string_literal"
	KindERROR               = "ERROR"
)
